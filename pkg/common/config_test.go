package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/emberlord/pkg/engine"
)

func TestLoadFromCreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "emberlord")

	config, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		FirstMover:   "b",
		TurnTime:     "1/15+0",
		Color:        true,
		BookStrategy: "sequential",
	}, config)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, data)

	rules, err := config.Rules()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRules(), rules)

	tc, err := config.TimeControl()
	require.NoError(t, err)
	require.NotNil(t, tc)
	assert.Equal(t, 15*time.Second, tc.Base)
	assert.Equal(t, 1, tc.MovesToGo)
}

func TestLoadFromKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("first-mover: a\nturn-time: \"\"\n"), FilePermissions))

	config, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "a", config.FirstMover)
	assert.True(t, config.Color, "missing keys keep their defaults")

	tc, err := config.TimeControl()
	require.NoError(t, err)
	assert.Nil(t, tc)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EMBERLORD_FIRST_MOVER", "a")
	t.Setenv("EMBERLORD_TURN_TIME", "30+1")
	t.Setenv("EMBERLORD_PENALTY_SEED", "99")
	t.Setenv("EMBERLORD_COLOR", "false")
	t.Setenv("EMBERLORD_BOOK_STRATEGY", "random")

	config, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, &Config{
		FirstMover:   "a",
		TurnTime:     "30+1",
		PenaltySeed:  99,
		Color:        false,
		BookStrategy: "random",
	}, config)
}

func TestDotEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("EMBERLORD_PENALTY_SEED=5\n"), FilePermissions))

	t.Setenv("EMBERLORD_PENALTY_SEED", "")
	require.NoError(t, os.Unsetenv("EMBERLORD_PENALTY_SEED"))

	require.NoError(t, LoadEnv(file, filepath.Join(t.TempDir(), "missing.env")))

	config, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, int64(5), config.PenaltySeed)
}

func TestLoadReadsWorkingDirectoryEnv(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("EMBERLORD_FIRST_MOVER=a\n"), FilePermissions))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("EMBERLORD_FIRST_MOVER", "")
	require.NoError(t, os.Unsetenv("EMBERLORD_FIRST_MOVER"))

	dir := filepath.Join(t.TempDir(), "emberlord")
	config, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "a", config.FirstMover)
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad side", file: "first-mover: red\n"},
		{name: "bad time control", file: "turn-time: soon\n"},
		{name: "bad strategy", file: "book-strategy: best\n"},
		{name: "bad yaml", file: "color: [\n"},
		{name: "bad seed", env: map[string]string{"EMBERLORD_PENALTY_SEED": "many"}},
		{name: "bad color", env: map[string]string{"EMBERLORD_COLOR": "purple"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			dir := t.TempDir()
			if test.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(test.file), FilePermissions))
			}

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestDump(t *testing.T) {
	config, err := Parse([]byte("penalty-seed: 12\n"))
	require.NoError(t, err)

	data, err := config.Dump()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, config, again)
	assert.Contains(t, string(data), "penalty-seed: 12")
}
