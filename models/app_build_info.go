// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package models

import "fmt"

const notAvailable = "N/A"

// BuildInfo carries build-time metadata injected with -ldflags -X and shown
// by the version command.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo returns BuildInfo with every empty value replaced by "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNotAvailable(version),
		Date:    orNotAvailable(date),
		Commit:  orNotAvailable(commit),
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", b.Version, b.Date, b.Commit)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
