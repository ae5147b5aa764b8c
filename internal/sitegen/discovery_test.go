package sitegen

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapFS(paths ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, p := range paths {
		fsys[p] = &fstest.MapFile{Data: []byte("# " + p)}
	}
	return fsys
}

var defaultDiscover = DiscoverOptions{Excluded: []string{".git", "target", "build"}, StaticDir: "static"}

func TestDiscover_ClassifiesEntries(t *testing.T) {
	fsys := mapFS(
		"README.md",
		"docs/a.md",
		"docs/img.png",
		".git/x.md",
		"target/y.md",
		"build/index.md",
		"static/s.md",
		"static/css/main.css",
		"targetish/z.md",
		"notes.MD",
		"notes.markdown",
	)

	tree, err := Discover(fsys, defaultDiscover)
	require.NoError(t, err)

	assert.Equal(t, []SourcePath{"README.md", "docs/a.md", "targetish/z.md"}, tree.Sources())
	assert.Equal(t, []string{"static/css/main.css", "static/s.md"}, tree.Assets())
	assert.Equal(t, []string{"static", "static/css"}, tree.AssetDirs())
}

func TestDiscover_PrefixesAreNormalized(t *testing.T) {
	fsys := mapFS("vendor/lib/a.md", "b.md")
	tree, err := Discover(fsys, DiscoverOptions{Excluded: []string{"./vendor/"}, StaticDir: "./static"})
	require.NoError(t, err)
	assert.Equal(t, []SourcePath{"b.md"}, tree.Sources())
}

// openOnlyFS hides ReadDir so fs.WalkDir has to Open every directory it reads.
type openOnlyFS struct {
	fsys fs.FS
	deny string
}

func (o openOnlyFS) Open(name string) (fs.File, error) {
	if hasPathPrefix(name, o.deny) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return o.fsys.Open(name)
}

func TestDiscover_ExcludedSubtreeIsNeverRead(t *testing.T) {
	fsys := openOnlyFS{fsys: mapFS("a.md", ".git/objects/x.md"), deny: ".git"}

	tree, err := Discover(fsys, defaultDiscover)
	require.NoError(t, err)
	assert.Equal(t, []SourcePath{"a.md"}, tree.Sources())
}

func TestDiscover_UnreadableDirectoryAborts(t *testing.T) {
	fsys := openOnlyFS{fsys: mapFS("a.md", "private/b.md"), deny: "private"}

	tree, err := Discover(fsys, defaultDiscover)
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.True(t, IsKind(err, KindFilesystem))
	assert.Contains(t, err.Error(), `"private"`)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestSourceTree_Contains(t *testing.T) {
	tree, err := Discover(mapFS("docs/a.md", "cafe\u0301.md"), defaultDiscover)
	require.NoError(t, err)

	assert.True(t, tree.Contains("docs/a.md"))
	assert.True(t, tree.Contains("docs/../docs/./a.md"))
	assert.False(t, tree.Contains("docs/b.md"))
	// Decomposed on disk, composed in the link.
	assert.True(t, tree.Contains("caf\u00e9.md"))
}

func TestSourceTree_Collisions(t *testing.T) {
	tree, err := Discover(mapFS("README.md", "index.md", "docs/readme.md", "docs/a.md"), defaultDiscover)
	require.NoError(t, err)

	collisions := tree.Collisions()
	require.Len(t, collisions, 1)
	assert.Equal(t, []SourcePath{"README.md", "index.md"}, collisions["index.html"])
}
