package cmd

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/build"
	"github.com/lone-faerie/tempconv/internal/cleanup"
	"github.com/lone-faerie/tempconv/internal/render"
	"github.com/lone-faerie/tempconv/log"
	"github.com/lone-faerie/tempconv/temperature"
)

//go:embed help/root.md
var rootHelp string

var errNoInput = errors.New("no input")

// extraCommands are added to every root command. Commands behind build tags
// register themselves here.
var extraCommands []func() *cobra.Command

type rootOptions struct {
	configPath   []string
	to           string
	defaultInput string
	logLevel     log.Level
}

// NewRootCommand returns the [cobra.Command] that converts a single
// temperature, with the units and bridge commands attached.
//
// Usage:
//
//	tempconv [literal] [flags]
//	tempconv [command]
//
// Flags:
//
//	-c, --config strings   Path(s) to config file/directory
//	-t, --to unit          Convert only to this unit
//	    --default string   Literal used when the input line is empty
//	-l, --log level        Log level (default WARN)
func NewRootCommand() *cobra.Command {
	opts := rootOptions{logLevel: log.LevelWarn}

	cmd := &cobra.Command{
		Use:   "tempconv [literal] [flags]",
		Short: "Convert temperatures between Celsius, Fahrenheit and Kelvin",
		Long:  rootHelp,
		Example: `  tempconv 36.9C
  echo 98.6F | tempconv
  tempconv --to kelvin 212 °F
  tempconv -- -40C`,
		Args:    cobra.ArbitraryArgs,
		Version: build.Version(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLogLevel(opts.logLevel)
			log.SetTextHandler(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			cleanup.Cleanup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, &opts, args)
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}

	cmd.SetVersionTemplate("tempconv {{.Version}}\nBuild Time: " + build.BuildTime() + "\n")
	cmd.SetHelpTemplate(cmd.HelpTemplate() + "\n" + fullDocsFooter + "\n")

	cmd.PersistentFlags().SortFlags = false
	cmd.PersistentFlags().StringSliceVarP(&opts.configPath, "config", "c", nil, "Path(s) to config file/directory")
	cmd.PersistentFlags().VarP((*log.LevelFlag)(&opts.logLevel), "log", "l", "Log level")
	cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Convert only to this unit")
	cmd.Flags().StringVar(&opts.defaultInput, "default", "", "Literal used when the input line is empty")
	cmd.RegisterFlagCompletionFunc("to", completeUnits)

	cmd.AddGroup(&cobra.Group{ID: "commands", Title: "Commands:"})
	cmd.AddCommand(NewCmdUnits(), NewCmdBridge(&opts), NewCmdStop(&opts))
	for _, fn := range extraCommands {
		cmd.AddCommand(fn())
	}

	return cmd
}

func completeUnits(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	var comps []cobra.Completion
	for _, u := range temperature.Units() {
		comps = append(comps, cobra.CompletionWithDesc(u.Name(), u.Symbol()))
	}
	return comps, cobra.ShellCompDirectiveNoFileComp
}

// setup loads the config and applies the flags shared by every command.
func (opts *rootOptions) setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log") {
		cfg.Log.Level = opts.logLevel
	}
	setLogHandler(cfg, cmd.ErrOrStderr())
	return cfg, nil
}

func runConvert(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	if opts.defaultInput != "" {
		cfg.DefaultInput = opts.defaultInput
	}

	var to temperature.Unit
	if opts.to != "" {
		if to, err = temperature.ParseUnit(opts.to); err != nil {
			return &ExitError{fmt.Errorf("invalid --to: %w", err), 2}
		}
	}

	p := render.New(cmd.OutOrStdout())

	var input string
	if len(args) > 0 {
		input = strings.TrimSpace(strings.Join(args, " "))
	} else if input, err = readInput(cmd, p, cfg.DefaultInput); err != nil {
		return &ExitError{err, 1}
	}
	log.Debug("Converting", "input", input)

	t, err := temperature.Parse(input)
	if err != nil {
		return &ExitError{fmt.Errorf("Invalid input: %w", err), 1}
	}

	var results []temperature.Temperature
	if opts.to != "" {
		r, err := temperature.Convert(t, to)
		if err != nil {
			return &ExitError{err, 1}
		}
		results = append(results, r)
	} else if results, err = temperature.ConvertTo(t, cfg.Units()...); err != nil {
		return &ExitError{err, 1}
	}

	if err = p.Input(t); err != nil {
		return err
	}
	return p.Results(results)
}

// readInput reads one line from the command's input, prompting for it when
// the input is a terminal. An empty line selects def.
func readInput(cmd *cobra.Command, p *render.Printer, def string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && render.IsTerminal(f) {
		if err := p.Prompt(def); err != nil {
			return "", err
		}
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return def, nil
	}
	return strings.TrimSpace(line), nil
}

// Execute runs the root command with the process arguments. Errors are
// printed to the command's error output; an [*ExitError] is printed without
// usage.
func Execute() error {
	cmd := NewRootCommand()
	c, err := cmd.ExecuteC()
	if err == nil {
		return nil
	}
	cleanup.Cleanup()

	var exit *ExitError
	if errors.As(err, &exit) {
		c.PrintErrln(err)
		return err
	}

	c.PrintErrln("Error:", err)
	c.Usage()
	return err
}
