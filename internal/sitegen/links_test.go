package sitegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceTree_Resolve(t *testing.T) {
	tree, err := Discover(mapFS(
		"README.md",
		"a.md",
		"b.md",
		"docs/readme.md",
		"docs/guide.md",
		"docs/deep/page.md",
		"my file.md",
	), defaultDiscover)
	require.NoError(t, err)

	cases := []struct {
		name    string
		current SourcePath
		dest    string
		want    string
		class   LinkClass
	}{
		{"sibling", "a.md", "b.md", "b.html", LinkIntraSite},
		{"dot prefix kept", "README.md", "./docs/readme.md", "./docs/index.html", LinkIntraSite},
		{"nested readme", "a.md", "docs/readme.md", "docs/index.html", LinkIntraSite},
		{"root readme", "docs/guide.md", "../README.md", "../index.html", LinkIntraSite},
		{"parent dir", "docs/guide.md", "../a.md", "../a.html", LinkIntraSite},
		{"from subdir to root readme", "docs/deep/page.md", "../../README.md", "../../index.html", LinkIntraSite},
		{"relative to current dir", "docs/guide.md", "deep/page.md", "deep/page.html", LinkIntraSite},
		{"percent encoded", "a.md", "my%20file.md", "my%20file.html", LinkIntraSite},
		{"encoded separator", "a.md", "docs%2Freadme.md", "docs%2Freadme.md", LinkUnresolved},
		{"missing", "a.md", "missing.md", "missing.md", LinkUnresolved},
		{"wrong dir", "docs/guide.md", "a.md", "a.md", LinkUnresolved},
		{"absolute path", "a.md", "/a.md", "/a.md", LinkUnresolved},
		{"escapes root", "a.md", "../a.md", "../a.md", LinkUnresolved},
		{"fragment is not markdown", "a.md", "b.md#top", "b.md#top", LinkOther},
		{"upper extension", "a.md", "b.MD", "b.MD", LinkOther},
		{"malformed escape", "a.md", "b%zz.md", "b%zz.md", LinkOther},
		{"image", "a.md", "static/me.png", "static/me.png", LinkOther},
		{"https", "a.md", "https://example.com", "https://example.com", LinkExternal},
		{"http markdown url", "a.md", "http://example.com/b.md", "http://example.com/b.md", LinkExternal},
		{"mailto", "a.md", "mailto:me@example.com", "mailto:me@example.com", LinkOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tree.Resolve(tc.current, tc.dest)
			assert.Equal(t, tc.want, got.Destination)
			assert.Equal(t, tc.class, got.Class, "class %s", got.Class)
		})
	}
}

func TestLinkClass_String(t *testing.T) {
	assert.Equal(t, "external", LinkExternal.String())
	assert.Equal(t, "intra-site", LinkIntraSite.String())
	assert.Equal(t, "unresolved", LinkUnresolved.String())
	assert.Equal(t, "other", LinkOther.String())
}
