// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const notAvailable = "N/A"

// AppBuildInfo is the version stamp injected with -ldflags at build time.
// Empty parts read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

func (a AppBuildInfo) BuildVersion() string { return orNA(a.version) }

func (a AppBuildInfo) BuildDate() string { return orNA(a.date) }

func (a AppBuildInfo) BuildCommit() string { return orNA(a.commit) }

// String is the multi-line banner printed on startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		a.BuildVersion(), a.BuildDate(), a.BuildCommit())
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
