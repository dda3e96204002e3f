package cli

import (
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-view/internal/prompt"
	"github.com/goliatone/go-view/pkg/vars"
	"github.com/goliatone/go-view/pkg/view"
)

type renderFlags struct {
	configFlags
	baseDir  string
	assigns  []string
	varsFile string
	prompts  []string
	secrets  []string
	output   string
	verbose  bool
}

func newRenderCommand(opts Options) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render <ref>",
		Short: "Render one template and print or write the result",
		Long: "Render one template reference.\n\n" +
			"Variables come from --vars-file, then --var, then interactive prompts;\n" +
			"later sources replace earlier ones.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, &flags, args[0])
		},
	}

	fs := cmd.Flags()
	flags.register(fs)
	fs.StringVar(&flags.baseDir, "base-dir", ".", "directory relative template paths are loaded from")
	fs.StringArrayVar(&flags.assigns, "var", nil, "variable assignment name=value (repeatable)")
	fs.StringVar(&flags.varsFile, "vars-file", "", "YAML file with a top-level map of variables")
	fs.StringSliceVar(&flags.prompts, "prompt", nil, "variable names to ask for interactively")
	fs.StringSliceVar(&flags.secrets, "secret", nil, "variable names to ask for without echo")
	fs.StringVarP(&flags.output, "output", "o", "", "write the result to this file instead of stdout")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log render progress to stderr")
	return cmd
}

func runRender(cmd *cobra.Command, opts Options, flags *renderFlags, ref string) error {
	cfg, err := flags.build(cmd.Flags())
	if err != nil {
		return err
	}

	data, err := collectVariables(cmd, opts.Prompter, flags)
	if err != nil {
		return err
	}

	engine, err := view.NewEngine(
		view.WithBaseDir(flags.baseDir),
		view.WithConfig(cfg),
		view.WithLogger(newLogger(opts.Stderr, flags.verbose)),
	)
	if err != nil {
		return err
	}

	out, err := engine.New(ref).Execute(cmd.Context(), data)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err = fmt.Fprint(opts.Stdout, out)
		return err
	}
	if err := atomic.WriteFile(flags.output, strings.NewReader(out)); err != nil {
		return fmt.Errorf("cli: write %s: %w", flags.output, err)
	}
	return nil
}

func collectVariables(cmd *cobra.Command, p prompt.Prompter, flags *renderFlags) (map[string]any, error) {
	data := map[string]any{}
	if flags.varsFile != "" {
		fromFile, err := loadVarsFile(flags.varsFile)
		if err != nil {
			return nil, err
		}
		for name, value := range fromFile {
			data[name] = value
		}
	}

	assigned, err := parseAssignments(flags.assigns)
	if err != nil {
		return nil, err
	}
	for name, value := range assigned {
		data[name] = value
	}

	ask := func(names []string, secret bool) error {
		for _, name := range names {
			if err := vars.ValidateName(name); err != nil {
				return err
			}
			cfg := prompt.InputConfig{
				Message: name,
				Default: fmt.Sprint(valueOr(data, name)),
			}
			var (
				answer string
				err    error
			)
			if secret {
				cfg.Default = ""
				answer, err = p.Password(cmd.Context(), cfg)
			} else {
				answer, err = p.Input(cmd.Context(), cfg)
			}
			if err != nil {
				return err
			}
			data[name] = answer
		}
		return nil
	}
	if err := ask(flags.prompts, false); err != nil {
		return nil, err
	}
	if err := ask(flags.secrets, true); err != nil {
		return nil, err
	}
	return data, nil
}

func valueOr(data map[string]any, name string) any {
	if v, ok := data[name]; ok && v != nil {
		return v
	}
	return ""
}
