// Package registry locates preset definitions by package name or relative
// path. It stands in for the module resolution a JavaScript runtime would do
// and implements resolver.Lookup.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/lugassawan/lintcfg/internal/resolver"
)

// PackagePrefix is the naming convention for shareable preset packages.
const PackagePrefix = "eslint-config-"

const indexName = "index"

// FS looks presets up in a file system. Package names are searched under
// each root in order; relative references are resolved against the
// directory of the preset that holds them.
type FS struct {
	name  string
	fsys  fs.FS
	roots []string
}

// NewFS creates a lookup over fsys. name identifies the source in preset IDs:
// an absolute directory yields file paths as IDs, anything else yields
// "<name>:<path>".
func NewFS(name string, fsys fs.FS, roots ...string) *FS {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &FS{name: name, fsys: fsys, roots: slices.Clone(roots)}
}

// Dir creates a lookup over a directory on disk.
func Dir(dir string, roots ...string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve preset directory: %w", err)
	}
	return NewFS(abs, os.DirFS(abs), roots...), nil
}

// Files returns the underlying file system.
func (l *FS) Files() fs.FS { return l.fsys }

func (l *FS) Lookup(ref, baseDir string) (*preset.Preset, error) {
	candidates, err := l.candidates(ref, baseDir)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		file, err := l.probe(c)
		if err != nil {
			if notExist(err) {
				continue
			}
			return nil, err
		}
		p, err := preset.Load(l.fsys, file)
		if err != nil {
			return nil, err
		}
		p.ID = l.qualify(file)
		p.Dir = l.qualify(p.Dir)
		return p, nil
	}
	return nil, fmt.Errorf("%q in %s: %w", ref, l.name, resolver.ErrNotFound)
}

// candidates lists the slash-separated paths, relative to the FS root, that
// ref may name.
func (l *FS) candidates(ref, baseDir string) ([]string, error) {
	if filepath.IsAbs(ref) {
		rel, ok := l.local(ref)
		if !ok {
			return nil, fmt.Errorf("%q is outside %s: %w", ref, l.name, resolver.ErrNotFound)
		}
		return []string{rel}, nil
	}

	if IsRelative(ref) {
		base := "."
		if baseDir != "" {
			var ok bool
			if base, ok = l.local(baseDir); !ok {
				return nil, fmt.Errorf("%q relative to %s: %w", ref, baseDir, resolver.ErrNotFound)
			}
		}
		p := path.Join(base, ref)
		if !fs.ValidPath(p) {
			return nil, fmt.Errorf("%q escapes %s: %w", ref, l.name, resolver.ErrNotFound)
		}
		return []string{p}, nil
	}

	var out []string
	for _, root := range l.roots {
		for _, name := range PackageNames(ref) {
			p := path.Join(root, name)
			if fs.ValidPath(p) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// probe finds the preset file for a candidate path: the path itself when it
// carries a preset extension, then the path with each extension, then an
// index file inside it.
func (l *FS) probe(candidate string) (string, error) {
	var tried []string
	if _, err := preset.FormatFromPath(candidate); err == nil {
		tried = append(tried, candidate)
	}
	for _, ext := range preset.Extensions {
		tried = append(tried, candidate+ext)
	}
	for _, ext := range preset.Extensions {
		tried = append(tried, path.Join(candidate, indexName+ext))
	}

	for _, name := range tried {
		info, err := fs.Stat(l.fsys, name)
		if err != nil {
			if notExist(err) {
				continue
			}
			return "", err
		}
		if info.Mode().IsRegular() {
			return name, nil
		}
	}
	return "", fs.ErrNotExist
}

// notExist treats a path component that is a file, not a directory, like a
// missing path.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// qualify turns an FS-relative path into an ID or directory carrying the
// source name.
func (l *FS) qualify(p string) string {
	if filepath.IsAbs(l.name) {
		return filepath.Join(l.name, filepath.FromSlash(p))
	}
	if p == "." {
		return l.name + ":"
	}
	return l.name + ":" + p
}

// local is the inverse of qualify. It reports false for paths that belong to
// another source.
func (l *FS) local(p string) (string, bool) {
	if filepath.IsAbs(l.name) {
		if !filepath.IsAbs(p) {
			return "", false
		}
		rel, err := filepath.Rel(l.name, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}
	rest, ok := strings.CutPrefix(p, l.name+":")
	if !ok {
		return "", false
	}
	if rest == "" {
		rest = "."
	}
	return rest, true
}

// Packages lists the preset packages found directly under the search roots,
// by directory name, in root order.
func (l *FS) Packages() ([]string, error) {
	var out []string
	for _, root := range l.roots {
		entries, err := fs.ReadDir(l.fsys, root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() || !strings.HasPrefix(e.Name(), PackagePrefix) {
				continue
			}
			if _, err := l.probe(path.Join(root, e.Name())); err == nil && !slices.Contains(out, e.Name()) {
				out = append(out, e.Name())
			}
		}
	}
	return out, nil
}

// IsRelative reports whether ref is a relative path rather than a package name.
func IsRelative(ref string) bool {
	return ref == "." || ref == ".." || strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../")
}

// PackageNames returns the package directory names a reference may denote:
// the name as written, then the conventional prefixed form. Scoped names keep
// their scope: "@acme/base" also tries "@acme/eslint-config-base" and a bare
// "@acme" tries "@acme/eslint-config".
func PackageNames(ref string) []string {
	names := []string{ref}
	scope, name, scoped := strings.Cut(ref, "/")
	switch {
	case strings.HasPrefix(ref, "@") && !scoped:
		names = append(names, ref+"/"+strings.TrimSuffix(PackagePrefix, "-"))
	case strings.HasPrefix(ref, "@"):
		if !strings.HasPrefix(name, PackagePrefix) {
			names = append(names, scope+"/"+PackagePrefix+name)
		}
	case !strings.HasPrefix(ref, PackagePrefix):
		names = append(names, PackagePrefix+ref)
	}
	return names
}

// ShortName strips the package naming convention for display.
func ShortName(pkg string) string {
	if scope, name, ok := strings.Cut(pkg, "/"); ok && strings.HasPrefix(scope, "@") {
		return scope + "/" + strings.TrimPrefix(name, PackagePrefix)
	}
	return strings.TrimPrefix(pkg, PackagePrefix)
}
