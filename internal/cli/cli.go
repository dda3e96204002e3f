// Package cli builds the viewctl command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-view/internal/prompt"
	"github.com/goliatone/go-view/pkg/config"
	"github.com/goliatone/go-view/pkg/escape"
	"github.com/goliatone/go-view/pkg/resolve"
)

// Options injects the process surroundings so commands can be tested.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Prompter prompt.Prompter
}

// NewRootCommand returns the viewctl root command.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Prompter == nil {
		opts.Prompter = prompt.NewSurvey()
	}

	root := &cobra.Command{
		Use:           "viewctl",
		Short:         "Render template files with named variables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	root.AddCommand(newRenderCommand(opts))
	root.AddCommand(newResolveCommand(opts))
	root.AddCommand(newEscapeCommand(opts))
	return root
}

// configFlags are shared by every command that needs a config.Config.
type configFlags struct {
	file    string
	path    string
	suffix  string
	escapes []string
}

func (c *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.file, "config", "", "YAML config file (path, suffix, escape)")
	fs.StringVar(&c.path, "path", "", "base path prepended to relative references")
	fs.StringVar(&c.suffix, "suffix", config.DefaultSuffix, "suffix appended to references")
	fs.StringSliceVar(&c.escapes, "escape", nil, "escaping strategies in order: "+strings.Join(escape.Names(), "|"))
}

// build starts from the config file (or the defaults) and applies the flags
// the user set explicitly.
func (c *configFlags) build(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if c.file != "" {
		loaded, err := config.Load(c.file)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if fs.Changed("path") {
		cfg.Path = c.path
	}
	if fs.Changed("suffix") {
		cfg.Suffix = c.suffix
	}
	if fs.Changed("escape") {
		chain, err := escape.LookupAll(c.escapes...)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Escapers = chain
	}
	return cfg, nil
}

func newResolveCommand(opts Options) *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "resolve <ref>",
		Short: "Print the path a template reference resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build(cmd.Flags())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(opts.Stdout, resolve.Resolve(args[0], cfg.Path, cfg.Suffix))
			return err
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newEscapeCommand(opts Options) *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "escape <value>",
		Short: "Run a value through the configured escaping strategies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build(cmd.Flags())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(opts.Stdout, cfg.Chain().Escape(args[0]))
			return err
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// parseAssignments turns repeated name=value flags into a map.
func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("cli: --var %q must look like name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}

func loadVarsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read vars file: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cli: decode vars file %s: %w", path, err)
	}
	return out, nil
}
