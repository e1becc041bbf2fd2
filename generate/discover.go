package generate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/schema"
)

// Description is one description file and the module it renders to
type Description struct {
	Path   string `json:"path"`
	Module string `json:"module"`
}

// Discover lists the description files under paths. Directories are walked
// and filtered by the include globs (matched against the path relative to
// the directory); files named explicitly only need a known extension. The
// module of a description is its path relative to the directory it was found
// in, minus the extension. Two descriptions for one module are a conflict.
func Discover(ctx context.Context, paths, include []string) ([]Description, error) {
	if err := ValidateInclude(include); err != nil {
		return nil, err
	}

	var found []Description
	byModule := make(map[string]string)

	add := func(file, rel string) error {
		module := schema.ModuleName(rel)
		if prev, ok := byModule[module]; ok {
			if prev == file {
				return nil
			}
			return errors.WithHint(
				errors.NewConflictError("module %s is described by both %s and %s", module, prev, file),
				"rename one of the files or move it to another directory",
			)
		}
		byModule[module] = file
		found = append(found, Description{Path: file, Module: module})
		return nil
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read description path %s", p)
		}
		if !info.IsDir() {
			if _, ok := schema.FormatOf(p); !ok {
				return nil, errors.WithHint(
					errors.Mark(errors.Newf("%s: unsupported description format", p), errors.ErrInvalidDescription),
					"descriptions end in .yaml, .yml, .toml or .json",
				)
			}
			if err := add(p, filepath.Base(p)); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				// Hidden directories below the root are skipped
				if file != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(p, file)
			if err != nil {
				return err
			}
			if _, ok := schema.FormatOf(file); !ok {
				return nil
			}
			matched, err := matchAny(include, filepath.ToSlash(rel))
			if err != nil || !matched {
				return err
			}
			return add(file, rel)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", p)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Module < found[j].Module })
	return found, nil
}

// ValidateInclude rejects malformed include globs
func ValidateInclude(include []string) error {
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.WithHint(
				errors.Newf("invalid include pattern %q", pattern),
				"patterns use *, ?, [class], {a,b} and ** for any number of directories",
			)
		}
	}
	return nil
}

// matchAny matches a slash-separated path against the include globs, where
// "**" spans any number of directories
func matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Wrapf(err, "include pattern %q", pattern)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
