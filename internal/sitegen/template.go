// template.go - Page classification and the fixed page shell
package sitegen

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
)

//go:embed templates/page.html
var EmbeddedFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(EmbeddedFiles, "templates/page.html"))

// PageKind is either IndexPage or RegularPage.
type PageKind interface {
	pageKind()
}

// IndexPage is any page whose file stem is "index". It may show the site illustration.
type IndexPage struct {
	Image *Illustration
}

// RegularPage is every other page; Title is its file stem.
type RegularPage struct {
	Title string
}

func (IndexPage) pageKind()   {}
func (RegularPage) pageKind() {}

// Templater wraps rendered fragments in the site's page shell.
type Templater struct {
	siteTitle   string
	description string
	image       *Illustration
}

// NewTemplater captures the per-run constants of the shell.
func NewTemplater(siteTitle, description string, image *Illustration) *Templater {
	return &Templater{siteTitle: siteTitle, description: description, image: image}
}

// Classify derives the kind of page from its file stem. dest must come from MapPath;
// anything not ending in .html means a caller bypassed it, and Classify panics.
func (t *Templater) Classify(dest DestinationPath) PageKind {
	name := path.Base(string(dest))
	if path.Ext(name) != htmlExt {
		panic(fmt.Sprintf("sitegen: cannot classify %q: not an %s page", dest, htmlExt))
	}
	stem := strings.TrimSuffix(name, htmlExt)
	if stem == "index" {
		return IndexPage{Image: t.image}
	}
	return RegularPage{Title: stem}
}

// Title is the <title> text for dest.
func (t *Templater) Title(dest DestinationPath) string {
	switch kind := t.Classify(dest).(type) {
	case RegularPage:
		return kind.Title + " — " + t.siteTitle
	default:
		return t.siteTitle
	}
}

// Render returns the complete HTML document for dest. Only the title and body differ
// between pages.
func (t *Templater) Render(dest DestinationPath, fragment []byte) ([]byte, error) {
	data := struct {
		Title       string
		Description string
		Image       *Illustration
		Content     template.HTML
	}{
		Title:       t.Title(dest),
		Description: t.description,
		Content:     template.HTML(fragment),
	}
	if kind, ok := t.Classify(dest).(IndexPage); ok {
		data.Image = kind.Image
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, renderError("execute page template", string(dest), err)
	}
	return buf.Bytes(), nil
}
