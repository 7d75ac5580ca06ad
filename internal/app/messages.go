// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package app

const (
	// Name is the command name used in usage lines and log entries.
	Name = "pianoman"

	// MsgLoadFailed prefixes errors from resolving the configuration.
	MsgLoadFailed = "error loading configuration"

	// MsgSchemaFailed prefixes errors from loading the schema.
	MsgSchemaFailed = "error loading schema"

	// MsgKeyRequired is returned when get is called without exactly one key.
	MsgKeyRequired = "get needs exactly one key"

	// MsgUnexpectedArgs is returned when positional arguments are given to a
	// command that takes none.
	MsgUnexpectedArgs = "unexpected arguments"
)
