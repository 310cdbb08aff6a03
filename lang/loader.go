package lang

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Loader resolves the target of an import tag to template text.
//
// Implementations return an error wrapping [ErrTemplateNotFound] when name
// does not exist, so that a [SearchLoader] can continue with the next entry.
type Loader interface {
	Load(ctx context.Context, name string) (string, error)
}

// LoaderFunc adapts an ordinary function to the [Loader] interface.
type LoaderFunc func(ctx context.Context, name string) (string, error)

// Load calls f(ctx, name).
func (f LoaderFunc) Load(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// MapLoader serves templates from memory.
type MapLoader map[string]string

// Load returns the template stored under name.
func (m MapLoader) Load(_ context.Context, name string) (string, error) {
	if text, ok := m[name]; ok {
		return text, nil
	}

	return "", ErrTemplateNotFound.With(slog.String("name", name))
}

// FSLoader reads templates from a file system.
type FSLoader struct {
	FS fs.FS
}

// Load reads name from the file system. Names are slash-separated and
// relative to the root of the file system.
func (l FSLoader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := strings.TrimPrefix(filepath.ToSlash(name), "./")

	data, err := fs.ReadFile(l.FS, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrTemplateNotFound.Wrap(err).With(slog.String("name", name))
		}

		return "", ErrReadTemplate.Wrap(err).With(slog.String("name", name))
	}

	return string(data), nil
}

// DirLoader reads templates from a directory of the host file system.
// Absolute names are read as given; relative names are resolved against Dir.
type DirLoader struct {
	Dir string
}

// Load reads the named file.
func (l DirLoader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrTemplateNotFound.Wrap(err).With(slog.String("path", path))
		}

		return "", ErrReadTemplate.Wrap(err).With(slog.String("path", path))
	}

	return string(data), nil
}

// SearchLoader tries each loader in order and returns the first template found.
type SearchLoader []Loader

// Load returns the template from the first loader that has it. Errors other
// than [ErrTemplateNotFound] stop the search.
func (s SearchLoader) Load(ctx context.Context, name string) (string, error) {
	for _, l := range s {
		text, err := l.Load(ctx, name)
		if err == nil {
			return text, nil
		}

		if !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}

	return "", ErrTemplateNotFound.With(slog.String("name", name))
}

// SearchPath returns a [SearchLoader] over the given directories.
func SearchPath(dirs ...string) SearchLoader {
	s := make(SearchLoader, 0, len(dirs))

	for _, dir := range dirs {
		if dir != "" {
			s = append(s, DirLoader{Dir: dir})
		}
	}

	return s
}
