// main projet file, entry point of the cli
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CiaranMcAleer/mdsite/internal/sitegen"
)

var version = "dev" // Version set during build with go build -ldflags "-X main.version=1.2.3"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type buildOptions struct {
	configPath    string
	root          string
	output        string
	static        string
	exclude       []string
	logLevel      string
	sizeThreshold int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &buildOptions{}
	defaults := sitegen.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "mdsite",
		Short: "Build the static site from the markdown files under the current directory",
		Long: `mdsite renders every markdown file under the root into a mirrored HTML tree,
rewriting links between markdown files to their pages, and copies the static
directory into the output unchanged. The output directory is deleted first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the built-in site configuration")
	flags.StringVar(&opts.root, "root", defaults.Root, "source root to search for markdown")
	flags.StringVarP(&opts.output, "out", "o", defaults.OutputDir, "output directory, relative to the root unless absolute")
	flags.StringVar(&opts.static, "static", defaults.StaticDir, "static asset directory, relative to the root")
	flags.StringSliceVar(&opts.exclude, "exclude", defaults.Excluded, "directory prefixes never searched for markdown")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.IntVar(&opts.sizeThreshold, "size-threshold", defaults.SizeThreshold, "warn when a gzipped page exceeds this many bytes (0 disables)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := opts.config(cmd)
		if err != nil {
			return err
		}
		return sitegen.BuildSite(cfg)
	}
	return cmd
}

// config layers explicitly set flags over the config file over the defaults.
func (o *buildOptions) config(cmd *cobra.Command) (sitegen.Config, error) {
	cfg := sitegen.DefaultConfig()
	if o.configPath != "" {
		loaded, err := sitegen.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("out") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("static") {
		cfg.StaticDir = o.static
	}
	if flags.Changed("exclude") {
		cfg.Excluded = o.exclude
	}
	if flags.Changed("size-threshold") {
		cfg.SizeThreshold = o.sizeThreshold
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return cfg, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(cfg.Logger)
	return cfg, nil
}
