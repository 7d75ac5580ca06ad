package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"dario.cat/mergo"

	"github.com/kevingerman/pianoman/internal/logger"
	"github.com/kevingerman/pianoman/models"
	"github.com/kevingerman/pianoman/schema"
)

// Option configures Load.
type Option func(*options)

type options struct {
	schema     *schema.Schema
	loader     *schema.Loader
	file       string
	noFile     bool
	environ    []string
	hasEnviron bool
	dotenv     []string
	args       []string
	hasArgs    bool
	flags      *FlagSet
	overrides  map[string]any
	prefix     string
	log        *logger.Logger
}

// WithSchema uses s instead of the process-wide default schema.
func WithSchema(s schema.Schema) Option {
	return func(o *options) {
		o.schema = &s
	}
}

// WithSchemaSource loads the schema from src instead of the embedded
// resource.
func WithSchemaSource(src schema.Source) Option {
	return func(o *options) {
		o.loader = schema.NewLoader(src)
	}
}

// WithSchemaLoader loads the schema through l, sharing its cache.
func WithSchemaLoader(l *schema.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithFile reads the config file at path. Without it the path comes from
// the -c/--config flag, then ./pianoman.config.json.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithoutFile skips the config file layer.
func WithoutFile() Option {
	return func(o *options) {
		o.noFile = true
	}
}

// WithEnviron reads the environment layer from environ (KEY=VALUE entries)
// instead of os.Environ.
func WithEnviron(environ []string) Option {
	return func(o *options) {
		o.environ = append([]string(nil), environ...)
		o.hasEnviron = true
	}
}

// WithDotEnv adds dotenv files to the environment layer. Variables already
// in the environment win, and an earlier file wins over a later one.
func WithDotEnv(paths ...string) Option {
	return func(o *options) {
		o.dotenv = append(o.dotenv, paths...)
	}
}

// WithArgs parses args (without the command name) with a FlagSet generated
// from the schema.
func WithArgs(args []string) Option {
	return func(o *options) {
		o.args = append([]string(nil), args...)
		o.hasArgs = true
	}
}

// WithFlagSet uses flags that were already parsed. It takes precedence over
// WithArgs.
func WithFlagSet(fs *FlagSet) Option {
	return func(o *options) {
		o.flags = fs
	}
}

// WithOverrides sets the explicit layer, applied last and unconditionally.
// Repeated calls merge, a later call replacing the whole value per key.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]any, len(values))
		}
		for k, v := range values {
			o.overrides[k] = models.DeepCopy(v)
		}
	}
}

// WithPrefix sets the environment prefix. The default is PIANOMAN_.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithLogger sets the logger. Without it Load logs through the logger
// attached to ctx, which is silent when there is none.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Load builds a Config from every layer: schema defaults, the config file,
// the environment, command-line flags and explicit overrides, each one
// overriding the previous.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.FromContext(ctx)
	}

	return newConfigBuilder(ctx, o).
		withSchema().
		withFlagSet().
		withDefaults().
		withFile().
		withEnv().
		withFlags().
		withOverrides().
		build()
}

type configBuilder struct {
	ctx    context.Context
	opts   options
	log    *logger.Logger
	schema schema.Schema
	flags  *FlagSet
	config *Config
	err    error
}

func newConfigBuilder(ctx context.Context, opts options) *configBuilder {
	return &configBuilder{
		ctx:  ctx,
		opts: opts,
		log:  opts.log,
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred while building config: %w", b.err)
	}

	b.log.Debug().Int("keys", b.config.Len()).Msg("config loaded")
	return b.config, nil
}

func (b *configBuilder) fail(err error) *configBuilder {
	b.err = errors.Join(b.err, err)
	return b
}

func (b *configBuilder) withSchema() *configBuilder {
	if b.opts.schema != nil {
		b.schema = b.opts.schema.Clone()
		return b
	}

	loader := b.opts.loader
	if loader == nil {
		loader = schema.DefaultLoader()
	}

	s, err := loader.Load(b.ctx)
	if err != nil {
		return b.fail(fmt.Errorf("error loading schema: %w", err))
	}
	b.schema = s
	return b
}

func (b *configBuilder) withFlagSet() *configBuilder {
	if b.err != nil {
		return b
	}

	switch {
	case b.opts.flags != nil:
		b.flags = b.opts.flags
	case b.opts.hasArgs:
		fs := NewFlagSet(PackageName, b.schema)
		if err := fs.Parse(b.opts.args); err != nil {
			return b.fail(fmt.Errorf("error parsing flags: %w", err))
		}
		b.flags = fs
	}
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	if b.err != nil {
		return b
	}

	b.config = newConfig(b.schema, b.opts.prefix)
	if err := b.config.seed(); err != nil {
		return b.fail(fmt.Errorf("error applying defaults: %w", err))
	}
	return b
}

func (b *configBuilder) withFile() *configBuilder {
	if b.err != nil || b.opts.noFile {
		return b
	}
	if err := b.ctx.Err(); err != nil {
		return b.fail(err)
	}

	path := b.opts.file
	if path == "" && b.flags != nil {
		path = b.flags.ConfigFile()
	}
	if path == "" {
		path = "./" + DefaultFileName
	}

	layer, found, err := parseFile(path)
	if err != nil {
		return b.fail(err)
	}
	if !found {
		b.log.Info().Str("path", path).Msg("unable to find config file")
		return b
	}

	return b.apply("file", layer, false)
}

func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}

	environ := b.opts.environ
	if !b.opts.hasEnviron {
		environ = os.Environ()
	}

	dotenv := make(map[string]string)
	for _, path := range b.opts.dotenv {
		vars, found, err := readDotEnv(path)
		if err != nil {
			return b.fail(err)
		}
		if !found {
			b.log.Info().Str("path", path).Msg("unable to find dotenv file")
			continue
		}
		if err := mergo.Merge(&dotenv, vars); err != nil {
			return b.fail(fmt.Errorf("error merging dotenv file %q: %w", path, err))
		}
	}

	layer, err := parseEnv(environ, dotenv, b.opts.prefix)
	if err != nil {
		return b.fail(err)
	}
	return b.apply("env", layer, false)
}

func (b *configBuilder) withFlags() *configBuilder {
	if b.err != nil || b.flags == nil {
		return b
	}

	layer, err := b.flags.Values()
	if err != nil {
		return b.fail(fmt.Errorf("error reading flags: %w", err))
	}
	return b.apply("flags", layer, true)
}

func (b *configBuilder) withOverrides() *configBuilder {
	if b.err != nil || len(b.opts.overrides) == 0 {
		return b
	}
	return b.apply("overrides", b.opts.overrides, false)
}

func (b *configBuilder) apply(source string, layer map[string]any, skipDefaults bool) *configBuilder {
	if err := b.config.Override(layer, skipDefaults); err != nil {
		return b.fail(fmt.Errorf("error applying %s layer: %w", source, err))
	}

	if e := b.log.Debug(); e.Enabled() {
		keys := make([]string, 0, len(layer))
		for k := range layer {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.Str("layer", source).Strs("keys", keys).Msg("layer applied")
	}
	return b
}
