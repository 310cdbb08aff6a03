package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns the [Prefix] subdirectory of the directory reported by
// base. Without one, it falls back to the hidden directory fallback in the
// user's home, then to the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// PathEnv is the environment variable holding the template search path.
const PathEnv = "TUXEDO_PATH"

// SearchPath returns the template search directories: dirs in the given order
// followed by the directories listed in [PathEnv]. Entries that are not
// existing directories are dropped.
func SearchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(PathEnv),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return slices.DeleteFunc(
		strings.Split(list, string(os.PathListSeparator)),
		func(s string) bool { return s == "" },
	)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
