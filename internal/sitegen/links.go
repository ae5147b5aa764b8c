// links.go - Intra-site link resolution
package sitegen

import (
	"net/url"
	"path"
	"strings"
)

// LinkClass is how a link destination was classified while transforming a page.
type LinkClass int

const (
	// LinkOther is anything that is neither markdown nor an http(s) URL.
	LinkOther LinkClass = iota
	// LinkExternal is an absolute http:// or https:// URL.
	LinkExternal
	// LinkIntraSite is a .md destination naming a discovered source; it gets rewritten.
	LinkIntraSite
	// LinkUnresolved is a .md destination that names no discovered source; it is left alone.
	LinkUnresolved
)

func (c LinkClass) String() string {
	switch c {
	case LinkExternal:
		return "external"
	case LinkIntraSite:
		return "intra-site"
	case LinkUnresolved:
		return "unresolved"
	default:
		return "other"
	}
}

// ResolvedLink is the destination to emit and how it was classified.
type ResolvedLink struct {
	Destination string
	Class       LinkClass
}

func isExternal(dest string) bool {
	return strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://")
}

// Resolve classifies dest as written in current and rewrites it when it points at a
// discovered markdown source. The rewritten link stays relative to current's directory.
// Dangling .md links are not an error; they come back unchanged.
func (t *SourceTree) Resolve(current SourcePath, dest string) ResolvedLink {
	external := isExternal(dest)
	if !strings.HasSuffix(dest, markdownExt) || external {
		if external {
			return ResolvedLink{Destination: dest, Class: LinkExternal}
		}
		return ResolvedLink{Destination: dest, Class: LinkOther}
	}

	target, err := url.PathUnescape(dest)
	if err != nil {
		return ResolvedLink{Destination: dest, Class: LinkOther}
	}
	// An encoded separator would make the rewritten name differ from the page it resolved to.
	if strings.Count(target, "/") != strings.Count(dest, "/") {
		return ResolvedLink{Destination: dest, Class: LinkUnresolved}
	}
	if path.IsAbs(target) || !t.Contains(path.Join(path.Dir(string(current)), target)) {
		return ResolvedLink{Destination: dest, Class: LinkUnresolved}
	}

	i := strings.LastIndex(dest, "/")
	return ResolvedLink{Destination: dest[:i+1] + htmlName(dest[i+1:]), Class: LinkIntraSite}
}
