// processor.go - Markdown to HTML fragment conversion
package sitegen

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
	mermaid "go.abhg.dev/goldmark/mermaid"
)

// MarkdownProcessor turns one source file into an HTML fragment. It is bound to the
// SourceTree of a single run.
type MarkdownProcessor struct {
	md goldmark.Markdown
}

// NewMarkdownProcessor creates a processor whose link rewriting resolves against tree.
func NewMarkdownProcessor(tree *SourceTree, opts TransformOptions) *MarkdownProcessor {
	return &MarkdownProcessor{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				&mermaid.Extender{RenderMode: mermaid.RenderModeClient},
				&frontmatter.Extender{},
				NewPageTransformer(tree, opts),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render parses content as the source src and returns the rendered fragment.
func (mp *MarkdownProcessor) Render(src SourcePath, content []byte) ([]byte, error) {
	root := mp.md.Parser().Parse(text.NewReader(content), parser.WithContext(NewPageContext(src)))

	var buf bytes.Buffer
	if err := mp.md.Renderer().Render(&buf, content, root); err != nil {
		return nil, renderError("render markdown", string(src), err)
	}
	return buf.Bytes(), nil
}
