package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader(afero.NewMemMapFs()).WithLookup(noEnv).Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Detector.Keywords)
	assert.Equal(t, "stdio", cfg.LSP.Transport)
	assert.Equal(t, "127.0.0.1:7998", cfg.LSP.Address)
	assert.Empty(t, cfg.Locator.CallFilter.Function)
}

func TestLoadFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/csscolor.yaml", []byte(`
log:
  level: debug
detector:
  keywords: true
locator:
  call_filter:
    function: style
    argument: 1
lsp:
  transport: tcp
  address: ":9000"
`), 0o644))

	cfg, err := NewLoader(fsys).WithLookup(noEnv).Load("/etc/csscolor.yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Detector.Keywords)
	assert.Equal(t, "style", cfg.Locator.CallFilter.Function)
	assert.Equal(t, 1, cfg.Locator.CallFilter.Argument)
	assert.Equal(t, "tcp", cfg.LSP.Transport)
	assert.Equal(t, ":9000", cfg.LSP.Address)
}

func TestLoadDefaultFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte("detector:\n  keywords: true\n"), 0o644))

	cfg, err := NewLoader(fsys).WithLookup(noEnv).Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Detector.Keywords)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).WithLookup(noEnv).Load("/nope.yaml")
	assert.ErrorContains(t, err, "read config /nope.yaml")
}

func TestLoadEnvPrecedence(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "c.yaml", []byte("log:\n  level: warn\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, ".env", []byte(
		"CSSCOLOR_LOG_LEVEL=error\nCSSCOLOR_KEYWORDS=true\nCSSCOLOR_CALL_FUNCTION=css\n"), 0o644))

	cfg, err := NewLoader(fsys).
		WithLookup(envMap(map[string]string{"CSSCOLOR_CALL_FUNCTION": "style", "CSSCOLOR_CALL_ARGUMENT": "2"})).
		Load("c.yaml", ".env", ".env.local")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Detector.Keywords)
	assert.Equal(t, "style", cfg.Locator.CallFilter.Function)
	assert.Equal(t, 2, cfg.Locator.CallFilter.Argument)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
		want string
	}{
		{name: "bad level", yaml: "log:\n  level: chatty\n", want: "invalid config"},
		{name: "bad transport", yaml: "lsp:\n  transport: pigeon\n", want: "invalid config"},
		{name: "tcp without address", yaml: "lsp:\n  transport: tcp\n  address: \"\"\n", want: "invalid config"},
		{name: "negative argument", yaml: "locator:\n  call_filter:\n    argument: -1\n", want: "invalid config"},
		{name: "bad yaml", yaml: "log: [", want: "failed to unmarshal"},
		{name: "bad env bool", env: map[string]string{"CSSCOLOR_KEYWORDS": "maybe"}, want: "env CSSCOLOR_KEYWORDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "c.yaml", []byte(tt.yaml), 0o644))

			_, err := NewLoader(fsys).WithLookup(envMap(tt.env)).Load("c.yaml")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
