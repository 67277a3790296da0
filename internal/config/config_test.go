package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"organizer/internal/config"
	"organizer/internal/errors"
	"organizer/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, ".", cfg.Settings.Directory)
	assert.False(t, cfg.Settings.DryRun)
	assert.False(t, cfg.Settings.Verbose)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, 2, cfg.Watch.Interval)
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Settings.Directory)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
settings:
  directory: /srv/inbox
  dry_run: true
  verbose: true
rules:
  - match: "report_*.pdf"
    category: Reports
watch:
  interval: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/inbox", cfg.Settings.Directory)
	assert.True(t, cfg.Settings.DryRun)
	assert.True(t, cfg.Settings.Verbose)
	assert.Equal(t, []types.Rule{{Match: "report_*.pdf", Category: "Reports"}}, cfg.Rules)
	assert.Equal(t, 10, cfg.Watch.Interval)
}

func TestLoadConfigFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
settings:
  dry_run: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	// Unset fields keep their defaults
	assert.Equal(t, ".", cfg.Settings.Directory)
	assert.True(t, cfg.Settings.DryRun)
	assert.Equal(t, 2, cfg.Watch.Interval)
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [not a map"), 0644))

	_, err := config.LoadConfigFile(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects empty rule match", func(t *testing.T) {
		cfg := config.New()
		cfg.Rules = []types.Rule{{Match: "", Category: "X"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidConfig))
	})

	t.Run("rejects empty rule category", func(t *testing.T) {
		cfg := config.New()
		cfg.Rules = []types.Rule{{Match: "*.pdf", Category: ""}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidConfig))
	})

	t.Run("rejects bad glob", func(t *testing.T) {
		cfg := config.New()
		cfg.Rules = []types.Rule{{Match: "[", Category: "X"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidConfig))
	})

	t.Run("rejects zero watch interval", func(t *testing.T) {
		cfg := config.New()
		cfg.Watch.Interval = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidConfig))
	})
}
