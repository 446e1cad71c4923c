package main

import "fmt"

// Set via -ldflags at release build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("ire %s (commit %s, built %s)", version, commit, date)
}
