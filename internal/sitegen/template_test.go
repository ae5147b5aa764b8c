package sitegen

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplater_Classify(t *testing.T) {
	image := &Illustration{Src: "./static/me.jpg"}
	tp := NewTemplater("Site", "desc", image)

	assert.Equal(t, IndexPage{Image: image}, tp.Classify("index.html"))
	assert.Equal(t, IndexPage{Image: image}, tp.Classify("docs/index.html"))
	assert.Equal(t, RegularPage{Title: "about"}, tp.Classify("about.html"))
	assert.Equal(t, RegularPage{Title: "index2"}, tp.Classify("index2.html"))
	assert.Equal(t, RegularPage{Title: "v1.2"}, tp.Classify("notes/v1.2.html"))
}

func TestTemplater_ClassifyRejectsNonHTML(t *testing.T) {
	tp := NewTemplater("Site", "", nil)
	assert.Panics(t, func() { tp.Classify("README.md") })
	assert.Panics(t, func() { tp.Classify("index") })
	assert.Panics(t, func() { _, _ = tp.Render("about.md", nil) })
}

func TestTemplater_Title(t *testing.T) {
	tp := NewTemplater("Juliette Pluto", "", nil)
	assert.Equal(t, "Juliette Pluto", tp.Title("index.html"))
	assert.Equal(t, "Juliette Pluto", tp.Title("docs/index.html"))
	assert.Equal(t, "cv — Juliette Pluto", tp.Title("cv.html"))
}

func TestTemplater_Render(t *testing.T) {
	tp := NewTemplater("Site", "Engineer & writer", nil)
	page, err := tp.Render("posts/hello.html", []byte("<p>Hello <em>world</em></p>"))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	require.NoError(t, err)
	assert.Equal(t, "hello — Site", doc.Find("title").Text())
	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, "Engineer & writer", desc)
	html, err := doc.Find("main").Html()
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <em>world</em></p>", html)
	assert.Equal(t, 1, doc.Find(`link[rel="stylesheet"]`).Length())
	assert.Equal(t, 0, doc.Find("picture").Length())
}

func TestTemplater_TitleIsEscaped(t *testing.T) {
	tp := NewTemplater("Site", "", nil)
	page, err := tp.Render("a<b.html", nil)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>a&lt;b — Site</title>")
}

// Pages differ only in title and body.
func TestTemplater_ShellIsConstant(t *testing.T) {
	tp := NewTemplater("Site", "desc", nil)
	a, err := tp.Render("a.html", []byte("AAA"))
	require.NoError(t, err)
	b, err := tp.Render("b.html", []byte("BBB"))
	require.NoError(t, err)

	normalize := func(page []byte, stem, body string) string {
		s := strings.Replace(string(page), "<title>"+stem+" — Site</title>", "<title></title>", 1)
		return strings.Replace(s, "<main>"+body+"</main>", "<main></main>", 1)
	}
	assert.Equal(t, normalize(a, "a", "AAA"), normalize(b, "b", "BBB"))
}

func TestTemplater_IndexImage(t *testing.T) {
	image := &Illustration{
		Src:   "./static/me-4by5.jpg",
		Alt:   "Me in front of the Golden Gate bridge",
		Width: "100%",
		Sources: []ImageSource{
			{Type: "image/webp", Srcset: "./static/me-4by5.webp"},
			{Type: "image/jpeg", Srcset: "./static/me-4by5.jpg"},
		},
	}
	tp := NewTemplater("Site", "", image)

	page, err := tp.Render("index.html", []byte("<p>hi</p>"))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Find("picture source").Length())
	alt, _ := doc.Find("picture img").Attr("alt")
	assert.Equal(t, image.Alt, alt)
	width, _ := doc.Find("picture img").Attr("width")
	assert.Equal(t, "100%", width)
	assert.Less(t, strings.Index(string(page), "<picture>"), strings.Index(string(page), "<main>"))

	regular, err := tp.Render("about.html", []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.NotContains(t, string(regular), "<picture>")
}
