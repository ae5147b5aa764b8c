// config.go - Build configuration, defaults and the YAML overlay
package sitegen

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	markdownExt = ".md"
	htmlExt     = ".html"

	// DefaultSizeThreshold is the gzip size above which a page is reported, roughly one TCP initial window.
	DefaultSizeThreshold = 14 * 1024
)

// ExternalLinkGlyph is appended inside every anchor pointing at an http(s) URL.
const ExternalLinkGlyph = `<svg style="width: 0.4em; vertical-align: middle; padding-bottom: 0.4em;" class="w-16 align-top" focusable="false" aria-hidden="true" viewBox="3 6 23 20"><path stroke="currentcolor" stroke-width="4" fill="none" d="M24 8L8 24M8 8H24v16"></path></svg>`

// GoogleWordmark is the default inline decoration for the readme page.
const GoogleWordmark = `<span style="color: var(--gblue)">G</span><span style="color: var(--gred)">o</span><span style="color: var(--gyellow)">o</span><span style="color: var(--gblue)">g</span><span style="color: var(--ggreen)">l</span><span style="color: var(--gred)">e</span>`

// ImageSource is one <source> entry of the index illustration.
type ImageSource struct {
	Type   string `yaml:"type"`
	Srcset string `yaml:"srcset"`
}

// Illustration is the optional picture rendered above the index page content.
type Illustration struct {
	Src     string        `yaml:"src"`
	Alt     string        `yaml:"alt"`
	Width   string        `yaml:"width"`
	Sources []ImageSource `yaml:"sources"`
}

// Config is everything a run needs. It is read-only once BuildSite starts.
type Config struct {
	// Root is the source tree. OutputDir and StaticDir are relative to it unless absolute.
	Root      string `yaml:"root"`
	OutputDir string `yaml:"output"`
	StaticDir string `yaml:"static"`
	// Excluded are root-relative directory prefixes never searched for markdown.
	// The static and output directories are always excluded in addition.
	Excluded []string `yaml:"exclude"`

	SiteTitle   string `yaml:"title"`
	Description string `yaml:"description"`

	// DecoratedPage is the only source whose text gets DecorateText replaced by DecorationMarkup.
	DecoratedPage    string `yaml:"decorated_page"`
	DecorateText     string `yaml:"decorate_text"`
	DecorationMarkup string `yaml:"decoration_markup"`

	ExternalLinkMarkup string        `yaml:"external_link_markup"`
	IndexImage         *Illustration `yaml:"index_image"`

	// SizeThreshold in bytes of gzipped page output; 0 disables the report.
	SizeThreshold int `yaml:"size_threshold"`

	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration the site has always been built with.
func DefaultConfig() Config {
	return Config{
		Root:               ".",
		OutputDir:          "build",
		StaticDir:          "static",
		Excluded:           []string{".git", "target"},
		SiteTitle:          "Juliette Pluto",
		Description:        "Engineer at Google",
		DecoratedPage:      "README.md",
		DecorateText:       "Google",
		DecorationMarkup:   GoogleWordmark,
		ExternalLinkMarkup: ExternalLinkGlyph,
		SizeThreshold:      DefaultSizeThreshold,
	}
}

// LoadConfig overlays the YAML file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError("read config", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, configError("parse config", path, err)
	}
	return cfg, nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// resolveDir returns dir as an absolute path, interpreting relative values against root.
func resolveDir(root, dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Abs(dir)
}

// relativeToRoot returns the slash form of abs relative to root, or "" when abs lies outside root.
func relativeToRoot(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

// layout is the resolved, absolute form of the directory settings.
type layout struct {
	root      string
	output    string
	static    string
	staticRel string
	// configured holds the user's excluded prefixes; excluded adds the output and static dirs.
	configured []string
	excluded   []string
}

func (c Config) layout() (layout, error) {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return layout{}, configError("resolve root", c.Root, err)
	}
	out, err := resolveDir(root, c.OutputDir)
	if err != nil {
		return layout{}, configError("resolve output", c.OutputDir, err)
	}
	if rel := relativeToRoot(out, root); rel != "" {
		return layout{}, configError("check output", out, fmt.Errorf("output directory contains source root %s", root))
	}
	if c.StaticDir == "" {
		return layout{}, configError("resolve static", c.StaticDir, errors.New("static directory must be set"))
	}
	static, err := resolveDir(root, c.StaticDir)
	if err != nil {
		return layout{}, configError("resolve static", c.StaticDir, err)
	}
	staticRel := relativeToRoot(root, static)
	if staticRel == "" || staticRel == "." {
		return layout{}, configError("check static", static, fmt.Errorf("static directory must be a subdirectory of %s", root))
	}

	if relativeToRoot(out, static) != "" || relativeToRoot(static, out) != "" {
		return layout{}, configError("check output", out, fmt.Errorf("output directory overlaps static directory %s", static))
	}

	l := layout{root: root, output: out, static: static, staticRel: staticRel}
	for _, p := range c.Excluded {
		if p = normalizePrefix(p); p != "" {
			l.configured = append(l.configured, p)
		}
	}
	l.excluded = append(l.excluded, l.configured...)
	if rel := relativeToRoot(root, out); rel != "" {
		l.excluded = append(l.excluded, rel)
	}
	l.excluded = append(l.excluded, l.staticRel)
	return l, nil
}

// normalizePrefix turns "./target/" or "target\\" into "target".
func normalizePrefix(p string) string {
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}
