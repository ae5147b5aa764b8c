// core logic for building static sites from Markdown files.
package sitegen

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/CiaranMcAleer/mdsite/internal/logfields"
)

// BuildSite regenerates the output tree from scratch: the output directory is deleted,
// sources are discovered, static assets mirrored, and every markdown file rendered to its
// page. Pages are built one at a time and the first error aborts the run; pages written
// before the failure stay on disk but the output as a whole must not be deployed.
func BuildSite(cfg Config) error {
	logger := cfg.logger()
	l, err := cfg.layout()
	if err != nil {
		return err
	}

	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return configError("check input dir", l.root, err)
		}
		return fsError("stat input dir", l.root, err)
	}
	if !info.IsDir() {
		return configError("check input dir", l.root, errors.New("not a directory"))
	}

	startTime := time.Now()
	logger.Info("Starting site build", slog.String("root", l.root), slog.String("output", l.output))

	fsys := os.DirFS(l.root)
	if err := checkOutputHoldsNoSources(fsys, l); err != nil {
		return err
	}
	if err := resetOutputDir(l.output); err != nil {
		return err
	}
	logger.Debug("Reset output directory", logfields.Path(l.output))

	tree, err := Discover(fsys, DiscoverOptions{Excluded: l.excluded, StaticDir: l.staticRel})
	if err != nil {
		return err
	}
	logger.Info("Discovered files",
		slog.Int("markdown", len(tree.Sources())),
		slog.Int("assets", len(tree.Assets())),
		slog.String("static", l.static))
	tree.logCollisions(logger)

	b := &builder{
		fsys:      fsys,
		output:    l.output,
		logger:    logger,
		threshold: cfg.SizeThreshold,
		processor: NewMarkdownProcessor(tree, cfg.transformOptions()),
		templater: NewTemplater(cfg.SiteTitle, cfg.Description, cfg.IndexImage),
	}
	if err := b.copyAssets(tree); err != nil {
		return err
	}
	for _, src := range tree.Sources() {
		if err := b.buildPage(src); err != nil {
			return err
		}
	}

	logger.Info("Site build complete",
		logfields.Count(len(tree.Sources())),
		logfields.DurationMS(float64(time.Since(startTime).Microseconds())/1000))
	return nil
}

// checkOutputHoldsNoSources refuses an output directory under the root that contains
// markdown which would otherwise be discovered. The static mirror of a previous run and
// excluded subtrees do not count.
func checkOutputHoldsNoSources(fsys fs.FS, l layout) error {
	outRel := relativeToRoot(l.root, l.output)
	if outRel == "" {
		return nil
	}
	for _, prefix := range l.configured {
		if hasPathPrefix(outRel, prefix) {
			return nil
		}
	}
	mirror := path.Join(outRel, l.staticRel)

	return fs.WalkDir(fsys, outRel, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == outRel && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return fsError("walk output dir", p, err)
		}
		if d.IsDir() {
			if p != outRel && (hasPathPrefix(p, mirror) || isExcluded(p, l.configured)) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), markdownExt) {
			return configError("check output", l.output, fmt.Errorf("output directory holds markdown source %s", p))
		}
		return nil
	})
}

func (c Config) transformOptions() TransformOptions {
	return TransformOptions{
		ExternalLinkMarkup: c.ExternalLinkMarkup,
		DecoratedPage:      SourcePath(normalizePrefix(c.DecoratedPage)),
		DecorateText:       c.DecorateText,
		DecorationMarkup:   c.DecorationMarkup,
	}
}

type builder struct {
	fsys      fs.FS
	output    string
	logger    *slog.Logger
	threshold int
	processor *MarkdownProcessor
	templater *Templater
}

func (b *builder) outputPath(rel string) string {
	return filepath.Join(b.output, filepath.FromSlash(rel))
}

func (b *builder) copyAssets(tree *SourceTree) error {
	for _, dir := range tree.AssetDirs() {
		if err := os.MkdirAll(b.outputPath(dir), 0755); err != nil {
			return fsError("create asset dir", dir, err)
		}
	}
	for _, rel := range tree.Assets() {
		if err := copyFilePreserveDirs(b.fsys, rel, b.outputPath(rel)); err != nil {
			return err
		}
		b.logger.Debug("Copied asset", logfields.Asset(rel))
	}
	return nil
}

func (b *builder) buildPage(src SourcePath) error {
	opStart := time.Now()
	content, err := fs.ReadFile(b.fsys, string(src))
	if err != nil {
		return fsError("read source", string(src), err)
	}
	fragment, err := b.processor.Render(src, content)
	if err != nil {
		return err
	}
	dest := MapPath(src)
	page, err := b.templater.Render(dest, fragment)
	if err != nil {
		return err
	}
	out := b.outputPath(string(dest))
	if err := writePage(out, page); err != nil {
		return err
	}
	CheckGzipSize(b.logger, string(dest), page, b.threshold)
	b.logger.Debug("Built page",
		logfields.Source(string(src)),
		logfields.Destination(string(dest)),
		logfields.DurationMS(float64(time.Since(opStart).Microseconds())/1000))
	return nil
}
