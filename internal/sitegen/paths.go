// paths.go - Source to destination path mapping
package sitegen

import (
	"path"
	"strings"
)

// SourcePath is a cleaned, slash-separated, root-relative path to a markdown file.
type SourcePath string

// DestinationPath is an output-root-relative path ending in .html. Only MapPath creates one.
type DestinationPath string

// MapPath derives the output page for a source. README.md in any letter case becomes
// index.html; every other file keeps its stem.
func MapPath(src SourcePath) DestinationPath {
	dir, name := path.Split(string(src))
	return DestinationPath(dir + htmlName(name))
}

func htmlName(name string) string {
	if strings.EqualFold(name, "readme"+markdownExt) {
		return "index" + htmlExt
	}
	return strings.TrimSuffix(name, path.Ext(name)) + htmlExt
}
