package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kevingerman/pianoman/coerce"
	"github.com/kevingerman/pianoman/models"
	"github.com/kevingerman/pianoman/schema"
)

const (
	configFlag      = "config"
	configShorthand = "c"
)

// FlagSet is a command-line parser generated from a schema: one --<name>
// flag per field plus the reserved -c/--config flag.
//
// list and dict fields take one or more values after the flag
// (--hosts a b c); values run until the next flag or "--".
type FlagSet struct {
	flags  *pflag.FlagSet
	schema schema.Schema
	values map[string]flagValue
	multi  map[string]string // flag spelling ("--hosts", "-H") -> long name
	config string
}

type flagValue interface {
	pflag.Value
	raw() any
}

// NewFlagSet builds the parser for s. A field named config is not exposed;
// the name belongs to the config file flag.
func NewFlagSet(name string, s schema.Schema) *FlagSet {
	f := &FlagSet{
		flags:  pflag.NewFlagSet(name, pflag.ContinueOnError),
		schema: s.Clone(),
		values: make(map[string]flagValue, s.Len()),
		multi:  make(map[string]string),
	}
	f.flags.SortFlags = false
	f.flags.Usage = func() {}

	shorts := map[string]bool{configShorthand: true}
	for _, spec := range f.schema.Fields() {
		if spec.Name == configFlag {
			continue
		}

		var v flagValue
		if spec.Type.MultiValue() {
			v = &multiValue{typ: spec.Type}
		} else {
			v = &scalarValue{typ: spec.Type}
		}

		short := spec.Short()
		if shorts[short] {
			short = ""
		}
		shorts[short] = true

		flag := f.flags.VarPF(v, spec.Name, short, spec.Help())
		flag.DefValue = models.Stringify(spec.Default)
		if spec.Type == models.TypeBool {
			flag.NoOptDefVal = "true"
		}

		f.values[spec.Name] = v
		if spec.Type.MultiValue() {
			f.multi["--"+spec.Name] = spec.Name
			if short != "" {
				f.multi["-"+short] = spec.Name
			}
		}
	}

	f.flags.StringVarP(&f.config, configFlag, configShorthand, "./"+DefaultFileName,
		"config file (JSON, JSON with comments, or YAML)")

	return f
}

// Parse parses args, which should not include the command name.
func (f *FlagSet) Parse(args []string) error {
	expanded, err := f.expand(args)
	if err != nil {
		return err
	}
	return f.flags.Parse(expanded)
}

// expand rewrites each multi-value flag followed by values into one
// --name=value argument per value, which pflag accepts for repeated flags.
// An inline --name=value takes that single value and ends the flag.
func (f *FlagSet) expand(args []string) ([]string, error) {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...), nil
		}

		spelling, inline, hasInline := strings.Cut(arg, "=")
		name, ok := f.multi[spelling]
		if !ok {
			out = append(out, arg)
			continue
		}

		if hasInline {
			out = append(out, "--"+name+"="+inline)
			continue
		}

		n := 0
		for i+1 < len(args) && !looksLikeFlag(args[i+1]) {
			i++
			n++
			out = append(out, "--"+name+"="+args[i])
		}

		if n == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingFlagValue, spelling)
		}
	}

	return out, nil
}

// looksLikeFlag reports whether arg starts a new flag. Negative numbers are
// values.
func looksLikeFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(arg, 64); err == nil {
		return false
	}
	return true
}

// Values returns one entry per exposed field: the raw flag value when the
// flag was given, otherwise the field's coerced default. Multi-value flags
// yield []string, or map[string]any for dict flags given as key=value
// pairs.
func (f *FlagSet) Values() (map[string]any, error) {
	defaults, err := coerce.Defaults(f.schema.Fields())
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(f.values))
	for name, v := range f.values {
		if f.flags.Changed(name) {
			out[name] = v.raw()
			continue
		}
		out[name] = defaults[name]
	}
	return out, nil
}

// Changed returns the names of the schema flags given on the command line.
func (f *FlagSet) Changed() []string {
	var names []string
	f.flags.Visit(func(flag *pflag.Flag) {
		if _, ok := f.values[flag.Name]; ok {
			names = append(names, flag.Name)
		}
	})
	return names
}

// ConfigFile returns the -c/--config value, or ./pianoman.config.json.
func (f *FlagSet) ConfigFile() string {
	return f.config
}

// ConfigFileSet reports whether -c/--config was given.
func (f *FlagSet) ConfigFileSet() bool {
	return f.flags.Changed(configFlag)
}

// Args returns the positional arguments left after parsing.
func (f *FlagSet) Args() []string {
	return f.flags.Args()
}

// Usage returns the flag help text.
func (f *FlagSet) Usage() string {
	return f.flags.FlagUsages()
}

// PFlags exposes the underlying pflag set, e.g. for cobra help output.
func (f *FlagSet) PFlags() *pflag.FlagSet {
	return f.flags
}

type scalarValue struct {
	typ models.FieldType
	val string
}

func (v *scalarValue) String() string { return v.val }

func (v *scalarValue) Set(s string) error {
	v.val = s
	return nil
}

func (v *scalarValue) Type() string {
	if v.typ == "" {
		return "value"
	}
	return v.typ.String()
}

func (v *scalarValue) raw() any { return v.val }

type multiValue struct {
	typ  models.FieldType
	vals []string
}

func (v *multiValue) String() string {
	if len(v.vals) == 0 {
		return ""
	}
	return "[" + strings.Join(v.vals, " ") + "]"
}

func (v *multiValue) Set(s string) error {
	v.vals = append(v.vals, s)
	return nil
}

func (v *multiValue) Type() string {
	return v.typ.String()
}

// raw returns the collected values. A dict flag given only key=value pairs
// becomes a map and a single value is kept as a literal to parse. Anything
// else stays a list of strings.
func (v *multiValue) raw() any {
	vals := append([]string(nil), v.vals...)
	if v.typ != models.TypeDict {
		return vals
	}

	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "{") {
		return vals[0]
	}
	if pairs, ok := keyValues(vals); ok {
		return pairs
	}
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}

func keyValues(vals []string) (map[string]any, bool) {
	out := make(map[string]any, len(vals))
	for _, kv := range vals {
		k, val, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, false
		}
		out[k] = val
	}
	return out, true
}
