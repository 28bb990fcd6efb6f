// Package seeddata embeds the starter files written by "xmlgraph init":
// a project configuration, an editable rule file, and a small sample
// document to extract. The embedded filesystem is rooted at "seed/".
package seeddata

import "embed"

// SeedFS contains the embedded starter files. Walk from "seed" to
// iterate over all files.
//
//go:embed all:seed
var SeedFS embed.FS
