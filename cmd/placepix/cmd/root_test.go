package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "placepix", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommandHelp(t *testing.T) {
	cmd := rootCmd

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	cmd.SetArgs([]string{"--help"})
	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "placeholder")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "Usage:")
}

func TestRootCommandVersion(t *testing.T) {
	cmd := rootCmd

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	// The shared rootCmd keeps flag values between Execute calls; clear the
	// help flag left set by the --help test above.
	require.NoError(t, cmd.Flags().Set("help", "false"))

	cmd.SetArgs([]string{"--version"})
	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "placepix version")
}

func TestServeCommandRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "render")
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{name: "valid", arg: "640x480", wantWidth: 640, wantHeight: 480},
		{name: "uppercase separator", arg: "640X480", wantWidth: 640, wantHeight: 480},
		{name: "missing separator", arg: "640", wantErr: true},
		{name: "non-numeric width", arg: "axb", wantErr: true},
		{name: "zero width", arg: "0x480", wantErr: true},
		{name: "negative height", arg: "640x-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := parseSize(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}
