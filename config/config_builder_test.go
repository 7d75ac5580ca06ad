package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kevingerman/pianoman/internal/logger"
	"github.com/kevingerman/pianoman/internal/mock"
	"github.com/kevingerman/pianoman/models"
	"github.com/kevingerman/pianoman/schema"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func load(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{WithSchema(testSchema(t)), WithoutFile(), WithEnviron(nil)}
	c, err := Load(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func get(t *testing.T, c *Config, key string) any {
	t.Helper()
	v, err := c.Get(key)
	require.NoError(t, err)
	return v
}

// ── precedence ────────────────────────────────────────────────────────────────

func TestLoad_DefaultsOnly(t *testing.T) {
	c := load(t)

	assert.Equal(t, -1, get(t, c, "p"))
	assert.Equal(t, "perch", get(t, c, "fish"))
	assert.Nil(t, get(t, c, "d"))
}

func TestLoad_ExplicitBeatsFile(t *testing.T) {
	path := writeFile(t, "c.json", `{"cluster_port": "44"}`)
	c := load(t, WithFile(path), WithOverrides(map[string]any{"cluster_port": "55"}))

	assert.Equal(t, "55", get(t, c, "cluster_port"))
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeFile(t, "c.json", `{"fish": "perch"}`)
	c := load(t, WithFile(path), WithEnviron([]string{"PIANOMAN_fish=trout"}))

	assert.Equal(t, "trout", get(t, c, "fish"))
}

func TestLoad_ExplicitBeatsEnv(t *testing.T) {
	c := load(t,
		WithEnviron([]string{"PIANOMAN_fish=carp"}),
		WithOverrides(map[string]any{"fish": "bass"}),
	)

	assert.Equal(t, "bass", get(t, c, "fish"))
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	c := load(t,
		WithEnviron([]string{"PIANOMAN_fish=carp", "PIANOMAN_p=3"}),
		WithArgs([]string{"--fish", "pike"}),
	)

	assert.Equal(t, "pike", get(t, c, "fish"))
	assert.Equal(t, 3, get(t, c, "p"), "unset flags must not reset lower layers")
}

func TestLoad_ExplicitBeatsFlags(t *testing.T) {
	c := load(t,
		WithArgs([]string{"--fish", "pike"}),
		WithOverrides(map[string]any{"fish": "bass"}),
	)

	assert.Equal(t, "bass", get(t, c, "fish"))
}

// TestLoad_FlagEqualToDefaultIsSkipped verifies the skip-defaults rule of the
// flag layer: a flag spelled as the default cannot undo a file value.
func TestLoad_FlagEqualToDefaultIsSkipped(t *testing.T) {
	path := writeFile(t, "c.json", `{"p": 5}`)
	c := load(t, WithFile(path), WithArgs([]string{"--p", "-1"}))

	assert.Equal(t, 5, get(t, c, "p"))
}

func TestLoad_ListFlag(t *testing.T) {
	c := load(t, WithArgs([]string{"--hosts", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, get(t, c, "hosts"))
}

func TestLoad_SelfReference(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		c := load(t, WithOverrides(map[string]any{"p": 7, "d": "{p}"}))
		assert.Equal(t, "7", get(t, c, "d"))
	})

	t.Run("file", func(t *testing.T) {
		path := writeFile(t, "c.json", `{"p": 7, "d": "{p}"}`)
		c := load(t, WithFile(path))
		assert.Equal(t, "7", get(t, c, "d"))
	})
}

func TestLoad_WithOverridesMerges(t *testing.T) {
	in := map[string]any{"fish": "bass"}
	c := load(t,
		WithOverrides(in),
		WithOverrides(map[string]any{"fish": "pike", "p": 2}),
	)
	in["fish"] = "changed"

	assert.Equal(t, "pike", get(t, c, "fish"))
	assert.Equal(t, 2, get(t, c, "p"))
}

// TestLoad_WithOverridesReplacesDicts verifies that a later dict for the
// same key replaces the earlier one instead of being merged into it.
func TestLoad_WithOverridesReplacesDicts(t *testing.T) {
	c := load(t,
		WithOverrides(map[string]any{"labels": map[string]any{"a": 1}}),
		WithOverrides(map[string]any{"labels": map[string]any{"b": 2}}),
	)

	assert.Equal(t, map[string]any{"b": 2}, get(t, c, "labels"))
}

// ── file selection ────────────────────────────────────────────────────────────

func TestLoad_ConfigFlagSelectsFile(t *testing.T) {
	path := writeFile(t, "c.yaml", "fish: trout\n")
	c := load(t, WithArgs([]string{"-c", path}))

	assert.Equal(t, "trout", get(t, c, "fish"))
}

func TestLoad_WithFileBeatsConfigFlag(t *testing.T) {
	flagged := writeFile(t, "flag.json", `{"fish": "from-flag"}`)
	explicit := writeFile(t, "explicit.json", `{"fish": "from-option"}`)

	c, err := Load(context.Background(),
		WithSchema(testSchema(t)),
		WithEnviron(nil),
		WithFile(explicit),
		WithArgs([]string{"--config", flagged}),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-option", get(t, c, "fish"))
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	writeTo := filepath.Join(dir, DefaultFileName)
	require.NoError(t, writeFileAt(writeTo, `{"fish": "trout"}`))

	c, err := Load(context.Background(), WithSchema(testSchema(t)), WithEnviron(nil))
	require.NoError(t, err)
	assert.Equal(t, "trout", get(t, c, "fish"))
}

func TestLoad_MissingFileIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("test", logger.Options{Output: &buf, Level: zerolog.InfoLevel})

	c, err := Load(context.Background(),
		WithSchema(testSchema(t)),
		WithEnviron(nil),
		WithFile(filepath.Join(t.TempDir(), "missing.json")),
		WithDotEnv(filepath.Join(t.TempDir(), "missing.env")),
		WithLogger(log),
	)
	require.NoError(t, err)
	assert.Equal(t, "perch", get(t, c, "fish"))
	assert.Contains(t, buf.String(), "unable to find config file")
	assert.Contains(t, buf.String(), "unable to find dotenv file")
}

func TestLoad_LoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("ctx", logger.Options{Output: &buf, Level: zerolog.DebugLevel})
	ctx := log.WithContext(context.Background())

	_, err := Load(ctx, WithSchema(testSchema(t)), WithoutFile(), WithEnviron([]string{"PIANOMAN_fish=x"}))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"layer":"env"`)
	assert.Contains(t, buf.String(), "config loaded")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, "c.json", `[1, 2]`)

	_, err := Load(context.Background(), WithSchema(testSchema(t)), WithEnviron(nil), WithFile(path))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

// ── environment ───────────────────────────────────────────────────────────────

func TestLoad_Prefix(t *testing.T) {
	c := load(t,
		WithPrefix("APP_"),
		WithEnviron([]string{"APP_fish=carp", "PIANOMAN_p=3"}),
	)

	assert.Equal(t, "carp", get(t, c, "fish"))
	assert.Equal(t, -1, get(t, c, "p"))
	assert.Equal(t, "APP_", c.Prefix())
}

func TestLoad_DotEnv(t *testing.T) {
	first := writeFile(t, "first.env", "PIANOMAN_fish=carp\nPIANOMAN_p=3\n")
	second := writeFile(t, "second.env", "PIANOMAN_fish=pike\nPIANOMAN_workers=9\n")

	c := load(t,
		WithEnviron([]string{"PIANOMAN_p=4"}),
		WithDotEnv(first, second),
	)

	assert.Equal(t, "carp", get(t, c, "fish"), "earlier dotenv file wins")
	assert.Equal(t, 4, get(t, c, "p"), "environment wins over dotenv")
	assert.Equal(t, 9, get(t, c, "workers"))
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("PIANOMAN_fish", "from-process")

	c, err := Load(context.Background(), WithSchema(testSchema(t)), WithoutFile())
	require.NoError(t, err)
	assert.Equal(t, "from-process", get(t, c, "fish"))
}

// ── errors ────────────────────────────────────────────────────────────────────

func TestLoad_LayerCoercionError(t *testing.T) {
	_, err := Load(context.Background(),
		WithSchema(testSchema(t)),
		WithoutFile(),
		WithEnviron([]string{"PIANOMAN_p=abc"}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env layer")
}

func TestLoad_FlagError(t *testing.T) {
	_, err := Load(context.Background(),
		WithSchema(testSchema(t)),
		WithoutFile(),
		WithArgs([]string{"--hosts"}),
	)
	assert.ErrorIs(t, err, ErrMissingFlagValue)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, WithSchema(testSchema(t)), WithEnviron(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

// ── schema sources ────────────────────────────────────────────────────────────

func TestLoad_SchemaSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockSource(ctrl)
	src.EXPECT().Load(gomock.Any()).
		Return([]models.FieldSpec{field("p", models.TypeInt, "-1")}, nil).
		Times(1)

	loader := schema.NewLoader(src)
	for i := 0; i < 2; i++ {
		c, err := Load(context.Background(), WithSchemaLoader(loader), WithoutFile(), WithEnviron(nil))
		require.NoError(t, err)
		assert.Equal(t, -1, get(t, c, "p"))
	}
}

func TestLoad_SchemaSourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockSource(ctrl)
	boom := errors.New("boom")
	src.EXPECT().Load(gomock.Any()).Return(nil, boom)

	_, err := Load(context.Background(), WithSchemaSource(src), WithoutFile(), WithEnviron(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestLoad_DefaultSchema(t *testing.T) {
	c, err := Load(context.Background(), WithoutFile(), WithEnviron(nil))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pianoman", get(t, c, "data_dir"))
	assert.Equal(t, "4040", get(t, c, "cluster_port"))
	assert.Equal(t, []any{"localhost"}, get(t, c, "cluster_hosts"))
	assert.Equal(t, 4, get(t, c, "workers"))
	assert.Equal(t, 2.5, get(t, c, "timeout"))
	assert.Equal(t, false, get(t, c, "verbose"))
	assert.Equal(t, map[string]any{}, get(t, c, "labels"))
}

func TestLoad_WithFlagSet(t *testing.T) {
	s := testSchema(t)
	fs := NewFlagSet("test", s)
	require.NoError(t, fs.Parse([]string{"--fish", "pike"}))

	c, err := Load(context.Background(), WithSchema(s), WithoutFile(), WithEnviron(nil), WithFlagSet(fs))
	require.NoError(t, err)
	assert.Equal(t, "pike", get(t, c, "fish"))
}
