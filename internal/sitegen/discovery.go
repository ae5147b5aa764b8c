// discovery.go - Single-walk discovery of markdown sources and static assets
package sitegen

import (
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/CiaranMcAleer/mdsite/internal/logfields"
)

// DiscoverOptions are the slash-separated, root-relative settings for one walk.
type DiscoverOptions struct {
	// Excluded directory prefixes; matched per path component and never descended into.
	Excluded []string
	// StaticDir is mirrored verbatim and never yields pages.
	StaticDir string
}

// SourceTree is the result of discovery. It is immutable for the rest of the run.
type SourceTree struct {
	sources   []SourcePath
	index     map[string]SourcePath
	assets    []string
	assetDirs []string
}

// Discover walks fsys once and classifies every entry as excluded, static asset,
// markdown source or irrelevant. Any walk error aborts discovery.
func Discover(fsys fs.FS, opts DiscoverOptions) (*SourceTree, error) {
	tree := &SourceTree{index: make(map[string]SourcePath)}
	static := normalizePrefix(opts.StaticDir)
	var excluded []string
	for _, prefix := range opts.Excluded {
		if prefix = normalizePrefix(prefix); prefix != "" {
			excluded = append(excluded, prefix)
		}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsError("walk", p, err)
		}
		if p == "." {
			return nil
		}
		if !utf8.ValidString(p) {
			return encodingError(p)
		}

		switch {
		case static != "" && hasPathPrefix(p, static):
			if d.IsDir() {
				tree.assetDirs = append(tree.assetDirs, p)
			} else {
				tree.assets = append(tree.assets, p)
			}
			return nil
		case isExcluded(p, excluded):
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		case d.IsDir():
			return nil
		case strings.HasSuffix(d.Name(), markdownExt):
			tree.add(SourcePath(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tree.sources, func(i, j int) bool { return tree.sources[i] < tree.sources[j] })
	return tree, nil
}

func (t *SourceTree) add(p SourcePath) {
	key := pathKey(string(p))
	if _, ok := t.index[key]; ok {
		return
	}
	t.index[key] = p
	t.sources = append(t.sources, p)
}

// Sources returns the discovered markdown files in sorted order.
func (t *SourceTree) Sources() []SourcePath {
	return t.sources
}

// Contains reports whether p, after cleaning, is a discovered source.
func (t *SourceTree) Contains(p string) bool {
	_, ok := t.index[pathKey(path.Clean(p))]
	return ok
}

// Assets returns the static files to copy, root-relative.
func (t *SourceTree) Assets() []string {
	return t.assets
}

// AssetDirs returns the static directories to recreate, parents before children.
func (t *SourceTree) AssetDirs() []string {
	return t.assetDirs
}

// Collisions groups sources that map to the same destination, such as README.md
// next to index.md. Within a group, the last source is the one whose page survives.
func (t *SourceTree) Collisions() map[DestinationPath][]SourcePath {
	byDest := make(map[DestinationPath][]SourcePath)
	for _, src := range t.sources {
		dst := MapPath(src)
		byDest[dst] = append(byDest[dst], src)
	}
	for dst, srcs := range byDest {
		if len(srcs) < 2 {
			delete(byDest, dst)
		}
	}
	return byDest
}

func (t *SourceTree) logCollisions(logger *slog.Logger) {
	for dst, srcs := range t.Collisions() {
		names := make([]string, len(srcs))
		for i, s := range srcs {
			names[i] = string(s)
		}
		logger.Warn("Multiple sources map to one page, the last one wins",
			logfields.Destination(string(dst)),
			slog.Any("sources", names))
	}
}

// pathKey is the lookup form of a path: NFC, so decomposed file names match composed links.
func pathKey(p string) string {
	return norm.NFC.String(p)
}

func hasPathPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func isExcluded(p string, excluded []string) bool {
	for _, prefix := range excluded {
		if hasPathPrefix(p, prefix) {
			return true
		}
	}
	return false
}
