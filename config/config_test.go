package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	require := require.New(t)
	cfg := Default()
	require.Equal("INFO", cfg.Logging.Level)
	require.Equal(image.Pt(1440, 2560), cfg.Renderer.Framebuffer())
	require.Equal(16*time.Millisecond, cfg.Renderer.FrameInterval)
	require.False(cfg.Journal.Disable)
	require.Equal(4096, cfg.Journal.MaxRecords)
	require.Equal(0, cfg.Sample.ID)
}

func TestLoadOverridesDefaults(t *testing.T) {
	require := require.New(t)
	cfg, err := Load([]byte(`
[Logging]
  Level = "debug"

[Renderer]
  FrameInterval = "33ms"

[Sample]
  ID = 2
`))
	require.NoError(err)
	require.Equal("DEBUG", cfg.Logging.Level)
	require.Equal(33*time.Millisecond, cfg.Renderer.FrameInterval)
	require.Equal(1440, cfg.Renderer.FramebufferWidth)
	require.Equal(2, cfg.Sample.ID)
	require.Equal(16, cfg.Journal.MaxSessions)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for _, b := range []string{
		"[Logging]\n Level = \"LOUD\"\n",
		"[Renderer]\n FramebufferWidth = 0\n",
		"[Renderer]\n FrameInterval = \"-1s\"\n",
		"[Journal]\n MaxRecords = -1\n",
		"[Sample]\n ID = -3\n",
		"[Sample]\n Name = \"Triangle\"\n",
	} {
		_, err := Load([]byte(b))
		require.ErrorIs(t, err, ErrInvalidConfig, b)
	}
	_, err := Load([]byte("[Logging"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "vkwsamples.toml")
	require.NoError(os.WriteFile(path, []byte("[Journal]\n Disable = true\n"), 0600))
	cfg, err := LoadFile(path)
	require.NoError(err)
	require.True(cfg.Journal.Disable)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(err)
}
