// Package config resolves a layered, schema-typed key/value configuration.
//
// Values are assembled from the following layers; a later layer overrides
// an earlier one key by key:
//  1. Schema defaults
//  2. Config file (JSON, JSON with comments, or YAML)
//  3. Environment variables starting with the prefix (PIANOMAN_ by default)
//  4. Command-line flags generated from the schema
//  5. Explicit overrides passed by the caller
//
// Every write of a schema-declared key goes through the coercion engine, so
// stored values always have their declared type. String values may reference
// other keys as {name}; references are resolved on read, which lets a value
// refer to a key that is only set later.
//
// The main entry points are [Load], which runs all layers, and [New], which
// returns a store seeded with defaults only for callers that apply their own
// layers with [Config.Override].
package config
