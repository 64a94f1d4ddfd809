// Package imager renders placeholder images: a solid background, a thin
// frame and a centered caption holding either the requested dimensions or a
// caller-supplied text.
package imager

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Spec describes a single placeholder image.
type Spec struct {
	Width  int
	Height int

	// Square >= 1 renders a Square-by-Square output. HasSquare with
	// Square == 0 is a bare crop flag: the Width-by-Height canvas is
	// center-cropped to its shorter side.
	Square    int
	HasSquare bool

	// Text overrides the default "{w} x {h}" caption when non-empty.
	Text string
}

// Config holds renderer appearance settings.
type Config struct {
	Background string
	Foreground string
}

// DefaultConfig returns the default placeholder palette.
func DefaultConfig() Config {
	return Config{
		Background: "#EEEEEE",
		Foreground: "#AAAAAA",
	}
}

// Renderer draws and encodes placeholder images. It is stateless and safe
// for concurrent use.
type Renderer struct {
	background color.Color
	foreground color.Color
	face       font.Face
}

// NewRenderer creates a renderer from the given appearance config.
func NewRenderer(cfg Config) (*Renderer, error) {
	bg := ParseHexColor(cfg.Background)
	if bg == nil {
		return nil, fmt.Errorf("invalid background color %q", cfg.Background)
	}
	fg := ParseHexColor(cfg.Foreground)
	if fg == nil {
		return nil, fmt.Errorf("invalid foreground color %q", cfg.Foreground)
	}

	return &Renderer{
		background: bg,
		foreground: fg,
		face:       basicfont.Face7x13,
	}, nil
}

// Render encodes the placeholder described by spec as PNG into w. The
// context is checked before any work starts; an already-cancelled request
// renders nothing.
func (r *Renderer) Render(ctx context.Context, w io.Writer, spec Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := r.draw(spec)
	if err != nil {
		return err
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding placeholder: %w", err)
	}
	return nil
}

func (r *Renderer) draw(spec Spec) (image.Image, error) {
	width, height := spec.Width, spec.Height
	if spec.Square >= 1 {
		width, height = spec.Square, spec.Square
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid placeholder size %dx%d", width, height)
	}

	canvas := imaging.New(width, height, r.background)
	r.drawFrame(canvas)
	r.drawCaption(canvas, Caption(spec.Text, width, height))

	if spec.HasSquare && spec.Square == 0 && width != height {
		side := min(width, height)
		return imaging.CropCenter(canvas, side, side), nil
	}
	return canvas, nil
}

// drawFrame draws a one-pixel border around the canvas.
func (r *Renderer) drawFrame(canvas *image.NRGBA) {
	b := canvas.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		canvas.Set(x, b.Min.Y, r.foreground)
		canvas.Set(x, b.Max.Y-1, r.foreground)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		canvas.Set(b.Min.X, y, r.foreground)
		canvas.Set(b.Max.X-1, y, r.foreground)
	}
}

// drawCaption centers the caption on the canvas. Captions wider than the
// canvas are simply clipped by the drawer.
func (r *Renderer) drawCaption(canvas *image.NRGBA, caption string) {
	if caption == "" {
		return
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(r.foreground),
		Face: r.face,
	}

	b := canvas.Bounds()
	textWidth := font.MeasureString(r.face, caption).Ceil()
	textHeight := r.face.Metrics().Height.Ceil()
	x := b.Min.X + (b.Dx()-textWidth)/2
	y := b.Min.Y + (b.Dy()+textHeight)/2
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(caption)
}

// ParseHexColor parses colors like "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) color.Color {
	if s == "" {
		return nil
	}
	if s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return nil
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return nil
	}
	//nolint:gosec // G115: parsed via %02x, always fits uint8
	return color.RGBA{uint8(rv), uint8(gv), uint8(bv), 255}
}
