// Package ire implements the interactive regex evaluation session behind
// the ire command line tool.
//
// This package allows you to:
//   - Load text files into immutable line-oriented documents
//   - Drive an edit/compile/match cycle that tolerates invalid patterns
//   - Project match results into a renderer-agnostic display model
//   - Export captured groups as CSV or TSV
//
// # Basic Usage
//
// To evaluate a pattern against a file and export the captures:
//
//	doc, err := ire.LoadDocument("access.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess := ire.NewSession([]*ire.Document{doc}, pattern.EngineGo)
//	if err := sess.SetPattern(`^(?P<host>\S+) .* "(?P<request>[^"]*)"`); err != nil {
//	    log.Fatal(err)
//	}
//
//	n, err := sess.ExportFile("captures.csv", ire.FormatCSV)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d records\n", n)
//
// The session is the single owner of all mutable state and is not safe for
// concurrent use; interactive front ends must funnel every edit, export,
// and appended line through one goroutine.
package ire
