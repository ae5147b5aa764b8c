// transform.go - Link rewriting and inline decoration on the goldmark AST
package sitegen

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindDecoration is the node kind of Decoration.
var KindDecoration = ast.NewNodeKind("Decoration")

// Decoration is a fixed chunk of markup spliced into the inline content of a page.
// It renders verbatim.
type Decoration struct {
	ast.BaseInline
	Markup []byte
}

// NewDecoration returns a Decoration rendering markup as-is.
func NewDecoration(markup string) *Decoration {
	return &Decoration{Markup: []byte(markup)}
}

func (n *Decoration) Kind() ast.NodeKind {
	return KindDecoration
}

func (n *Decoration) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Markup": string(n.Markup)}, nil)
}

type decorationRenderer struct{}

func (r *decorationRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDecoration, r.render)
}

func (r *decorationRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(n.(*Decoration).Markup)
	}
	return ast.WalkContinue, nil
}

var sourcePathKey = parser.NewContextKey()

// NewPageContext returns a parser context telling the transformer which source is being parsed.
func NewPageContext(src SourcePath) parser.Context {
	pc := parser.NewContext()
	pc.Set(sourcePathKey, src)
	return pc
}

// TransformOptions configures the per-page rewrite.
type TransformOptions struct {
	// ExternalLinkMarkup is appended inside anchors to http(s) URLs. Empty disables it.
	ExternalLinkMarkup string
	// DecoratedPage is the only source whose Text gets DecorateText replaced.
	DecoratedPage    SourcePath
	DecorateText     string
	DecorationMarkup string
}

// PageTransformer rewrites one page's AST in a single forward walk: link destinations go
// through the SourceTree, external links get a trailing glyph, and on the decorated page
// every occurrence of the configured literal becomes a Decoration.
type PageTransformer struct {
	tree *SourceTree
	opts TransformOptions
}

// NewPageTransformer binds a transformer to the run's discovered sources.
func NewPageTransformer(tree *SourceTree, opts TransformOptions) *PageTransformer {
	return &PageTransformer{tree: tree, opts: opts}
}

// Extend registers the transformer and the Decoration renderer, making PageTransformer a goldmark.Extender.
func (t *PageTransformer) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(util.Prioritized(t, 100)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&decorationRenderer{}, 100)))
}

// Transform implements parser.ASTTransformer. Without a source in pc the document is left as parsed.
func (t *PageTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src, ok := pc.Get(sourcePathKey).(SourcePath)
	if !ok {
		return
	}
	source := reader.Source()
	decorate := t.opts.DecorateText != "" && src == t.opts.DecoratedPage

	// Links never nest, so one slot holds the open link's classification.
	openExternal := false
	var autolinks []*ast.AutoLink

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Link:
			if entering {
				resolved := t.tree.Resolve(src, string(node.Destination))
				node.Destination = []byte(resolved.Destination)
				openExternal = resolved.Class == LinkExternal
				return ast.WalkContinue, nil
			}
			if openExternal && t.opts.ExternalLinkMarkup != "" {
				node.AppendChild(node, NewDecoration(t.opts.ExternalLinkMarkup))
			}
			openExternal = false
		case *ast.AutoLink:
			if entering && node.AutoLinkType == ast.AutoLinkURL && isExternal(string(node.URL(source))) {
				autolinks = append(autolinks, node)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering && decorate && node.Parent().Kind() != ast.KindCodeSpan {
				t.decorateText(node, source)
			}
		}
		return ast.WalkContinue, nil
	})

	// Autolinks render their own anchor, so an external one becomes a link node that can carry the glyph.
	if t.opts.ExternalLinkMarkup == "" {
		return
	}
	for _, al := range autolinks {
		link := ast.NewLink()
		link.Destination = al.URL(source)
		link.AppendChild(link, ast.NewString(al.Label(source)))
		link.AppendChild(link, NewDecoration(t.opts.ExternalLinkMarkup))
		parent := al.Parent()
		parent.ReplaceChild(parent, al, link)
	}
}

// decorateText splits node around every occurrence of the literal. The pieces before each
// occurrence are inserted ahead of node, so the walk never revisits them, and node keeps
// the remainder together with its line-break flags.
func (t *PageTransformer) decorateText(node *ast.Text, source []byte) {
	seg := node.Segment
	if seg.Padding != 0 {
		return
	}
	needle := []byte(t.opts.DecorateText)
	parent := node.Parent()
	start := seg.Start
	for {
		i := bytes.Index(source[start:seg.Stop], needle)
		if i < 0 {
			break
		}
		if i > 0 {
			piece := ast.NewTextSegment(text.NewSegment(start, start+i))
			piece.SetRaw(node.IsRaw())
			parent.InsertBefore(parent, node, piece)
		}
		parent.InsertBefore(parent, node, NewDecoration(t.opts.DecorationMarkup))
		start += i + len(needle)
	}
	if start != seg.Start {
		node.Segment = seg.WithStart(start)
	}
}
