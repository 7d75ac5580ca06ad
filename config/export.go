package config

import (
	"sort"

	"github.com/kevingerman/pianoman/models"
)

// AsMap returns a deep copy of the stored values without interpolation.
func (c *Config) AsMap() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = models.DeepCopy(v)
	}
	return out
}

// AsEnvironment renders every stored key as prefix+key mapped to the string
// form of its raw value. Loading the result through the environment layer
// with the same prefix gives back the same values.
func (c *Config) AsEnvironment(prefix string) map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[prefix+k] = models.Stringify(v)
	}
	return out
}

// Environ is AsEnvironment as sorted KEY=VALUE pairs, the form exec.Cmd.Env
// takes.
func (c *Config) Environ(prefix string) []string {
	vars := c.AsEnvironment(prefix)
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
