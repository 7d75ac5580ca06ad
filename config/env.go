// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv returns the variables in environ whose name starts with prefix,
// keyed by the rest of the name. The remainder keeps its case, so
// PIANOMAN_fish sets the key fish.
//
// Entries from dotenv fill in variables that environ does not set; a
// variable set in environ always wins.
func parseEnv(environ []string, dotenv map[string]string, prefix string) (map[string]any, error) {
	vars := env.ToMap(environ)
	if len(dotenv) > 0 {
		if err := mergo.Merge(&vars, dotenv); err != nil {
			return nil, fmt.Errorf("error merging dotenv variables: %w", err)
		}
	}

	out := make(map[string]any)
	for name, value := range vars {
		key, ok := strings.CutPrefix(name, prefix)
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}

	return out, nil
}

// readDotEnv reads a dotenv file. A missing file yields found == false and
// no error.
func readDotEnv(path string) (vars map[string]string, found bool, err error) {
	vars, err = godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("error reading dotenv file %q: %w", path, err)
	}
	return vars, true, nil
}
