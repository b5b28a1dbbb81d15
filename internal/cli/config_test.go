package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("loadConfig(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeTemp(t, "config.toml", `
width = 1024

[cloud]
orientation = "right angled"
scale = "log"
min_font_size = 90
max_font_size = 12

[layout]
budget = "2s"
seed = 7

[palette]
color = "#112233"

[transitions]
move = "400ms"
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1024.0, cfg.Width)
	assert.Equal(t, float64(defaultHeight), cfg.Height, "unset keys keep defaults")
	assert.Equal(t, layout.OrientationRightAngled, cfg.Cloud.Orientation)
	assert.Equal(t, layout.ScaleLog, cfg.Cloud.Scale)
	assert.Equal(t, 12.0, cfg.Cloud.MinFontSize, "font sizes are normalized")
	assert.Equal(t, 90.0, cfg.Cloud.MaxFontSize)
	assert.Equal(t, 2*time.Second, cfg.Layout.Budget)
	assert.Equal(t, uint64(7), cfg.Layout.Seed)
	assert.Equal(t, layout.DefaultPadding, cfg.Layout.Padding)
	assert.Equal(t, 400*time.Millisecond, cfg.Transitions.Move)
	assert.Equal(t, "#112233", cfg.palette()("any"))

	p := cfg.placement()
	assert.Equal(t, uint64(7), p.Seed)
	assert.Equal(t, 2*time.Second, p.Budget)
	assert.Len(t, cfg.cloudOptions(), 3)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code werrors.Code
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			code: werrors.ErrCodeFileNotFound,
		},
		{
			name: "bad toml",
			path: func(t *testing.T) string { return writeTemp(t, "bad.toml", "width = [") },
			code: werrors.ErrCodeInvalidOptions,
		},
		{
			name: "unknown orientation",
			path: func(t *testing.T) string {
				return writeTemp(t, "bad.toml", "[cloud]\norientation = \"sideways\"\n")
			},
			code: werrors.ErrCodeInvalidOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path(t))
			require.Error(t, err)
			assert.Equal(t, tt.code, werrors.GetCode(err))
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	c := &CLI{}
	assert.Empty(t, c.resolveConfigPath(), "no default config file")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, appName), 0o755))
	want := filepath.Join(dir, appName, configFileName)
	require.NoError(t, os.WriteFile(want, nil, 0o644))
	assert.Equal(t, want, c.resolveConfigPath())

	c.configPath = "explicit.toml"
	assert.Equal(t, "explicit.toml", c.resolveConfigPath())
}

func TestCloudOptionsApply(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cloud.Scale = layout.ScaleSqrt
	res, err := layoutWords(t.Context(), newLogger(io.Discard, LogInfo),
		[]layout.Word{{RawText: "go", Value: 1}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, layout.ScaleSqrt, res.options.Scale)
	assert.Equal(t, cloud.DefaultMaxFontSize, res.options.MaxFontSize)
}
