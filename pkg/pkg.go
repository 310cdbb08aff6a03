//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw content of the VERSION file embedded at build time.
//
//go:embed VERSION
var version string

// Version is the semantic version of the tuxedo module. It is printed by the
// CLI --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It prefixes the
	// configuration directory, the cache directory, and environment variables.
	Name = "tuxedo"
	// Description is a short summary used in help output.
	Description = "Template language renderer"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
