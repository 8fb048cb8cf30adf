package abacus

import _ "embed"

// Version is the release version of abacus, read from the VERSION file.
//
//go:embed VERSION
var Version string
