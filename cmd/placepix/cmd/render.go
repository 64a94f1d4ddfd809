package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/placepix/placepix/internal/imager"
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render SIZE",
	Short: "Render a placeholder image to a file",
	Long: `Render a single placeholder image without starting the server.

SIZE is given as WIDTHxHEIGHT, e.g. 640x480.

Examples:
  placepix render 640x480
  placepix render 640x480 --text "coming soon" -o banner.png
  placepix render 640x480 --square 200`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		width, height, err := parseSize(args[0])
		if err != nil {
			return err
		}
		if width > cfg.Image.MaxDimension || height > cfg.Image.MaxDimension {
			return fmt.Errorf("size %dx%d exceeds maximum dimension %d", width, height, cfg.Image.MaxDimension)
		}

		text, _ := cmd.Flags().GetString("text")
		square, _ := cmd.Flags().GetInt("square")
		output, _ := cmd.Flags().GetString("output")
		if square < 0 {
			return errors.New("square must be a positive integer")
		}
		if square > cfg.Image.MaxDimension {
			return fmt.Errorf("square %d exceeds maximum dimension %d", square, cfg.Image.MaxDimension)
		}
		if output == "" {
			output = fmt.Sprintf("placeholder_%dx%d.png", width, height)
		}

		renderer, err := imager.NewRenderer(imager.Config{
			Background: cfg.Image.Background,
			Foreground: cfg.Image.Foreground,
		})
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		spec := imager.Spec{
			Width:     width,
			Height:    height,
			Square:    square,
			HasSquare: square > 0,
			Text:      text,
		}
		if err := renderer.Render(cmd.Context(), f, spec); err != nil {
			return fmt.Errorf("failed to render image: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
		return nil
	},
}

// parseSize splits a WIDTHxHEIGHT argument into its two dimensions.
func parseSize(arg string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(arg), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WIDTHxHEIGHT)", arg)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (must be a positive integer)", parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil || height < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (must be a positive integer)", parts[1])
	}
	return width, height, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("text", "", "custom caption text")
	renderCmd.Flags().Int("square", 0, "output a square of this size cropped from the image")
	renderCmd.Flags().StringP("output", "o", "", "output file (default placeholder_WxH.png)")
}
