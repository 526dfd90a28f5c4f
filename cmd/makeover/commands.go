package makeover

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/makeover/internal/version"
	"github.com/arthur-debert/makeover/pkg/config"
	"github.com/arthur-debert/makeover/pkg/core"
	"github.com/arthur-debert/makeover/pkg/describe"
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/lister"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/report"
	"github.com/arthur-debert/makeover/pkg/scheduler"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/arthur-debert/makeover/pkg/ui/output/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the values of the root command's flags
type rootOptions struct {
	verbosity   int
	file        string
	list        bool
	describe    string
	selfInstall bool
	printConfig bool
	report      string
	shell       string
	echo        bool
	color       string
}

// flagConfigKeys maps flags to the config keys they override
var flagConfigKeys = map[string]string{
	"file":  "buildfile",
	"shell": "shell",
	"echo":  "echo",
	"color": "color",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: targetNamesCompletion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Target names share the positional namespace, so no subcommands.
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.file, "file", "f", "", MsgFlagFile)
	flags.BoolVarP(&opts.list, "list", "l", false, MsgFlagList)
	flags.StringVar(&opts.describe, "describe", "", MsgFlagDescribe)
	flags.BoolVar(&opts.selfInstall, "self-install", false, MsgFlagSelfInstall)
	flags.BoolVar(&opts.printConfig, "print-config", false, MsgFlagPrintConfig)
	flags.StringVar(&opts.report, "report", "", MsgFlagReport)
	flags.StringVar(&opts.shell, "shell", "", MsgFlagShell)
	flags.BoolVar(&opts.echo, "echo", false, MsgFlagEcho)
	flags.StringVar(&opts.color, "color", "", MsgFlagColor)

	rootCmd.MarkFlagsMutuallyExclusive("list", "describe", "self-install", "print-config")
	_ = rootCmd.RegisterFlagCompletionFunc("describe", targetNamesCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(styles.ColorAuto), string(styles.ColorAlways), string(styles.ColorNever)}, cobra.ShellCompDirectiveNoFileComp
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	return rootCmd
}

// run dispatches on the mode selected by flags
func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	styles.Configure(cfg.ColorMode(), os.Stdout)

	out := cmd.OutOrStdout()
	targets, overrides := splitArgs(args)

	switch {
	case opts.printConfig:
		data, err := cfg.TOML()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case opts.selfInstall:
		dest, err := selfInstall(cfg.InstallDir)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, MsgInstalled, dest)
		return nil

	case opts.list:
		file, err := loadBuildfile(cfg, overrides)
		if err != nil {
			return err
		}
		return lister.Render(out, file)

	case opts.describe != "":
		file, err := loadBuildfile(cfg, overrides)
		if err != nil {
			return err
		}
		return describeTarget(out, cfg, file, opts.describe)
	}

	result, buildErr := core.Execute(cmd.Context(), core.ExecuteOptions{
		Buildfile:    cfg.Buildfile,
		Targets:      targets,
		Overrides:    overrides,
		ShellPath:    cfg.Shell,
		ShellFlag:    cfg.ShellFlag,
		Out:          out,
		Echo:         cfg.Echo,
		DefaultGroup: cfg.DefaultGroup,
	})

	if opts.report != "" {
		if err := report.Write(opts.report, cfg.Buildfile, result, buildErr); err != nil {
			if buildErr == nil {
				return err
			}
			log.Error().Err(err).Str("path", opts.report).Msg(MsgErrReport)
		}
	}

	return buildErr
}

// loadConfig layers explicitly set flags over the configuration files
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	overrides := make(map[string]interface{})
	values := map[string]interface{}{
		"file":  opts.file,
		"shell": opts.shell,
		"echo":  opts.echo,
		"color": opts.color,
	}
	for flag, key := range flagConfigKeys {
		if cmd.Flags().Changed(flag) {
			overrides[key] = values[flag]
		}
	}
	return config.Load(config.LoadOptions{Overrides: overrides})
}

func loadBuildfile(cfg *config.Config, overrides map[string]string) (*types.Buildfile, error) {
	return core.Load(core.LoadOptions{
		Path:         cfg.Buildfile,
		Overrides:    overrides,
		DefaultGroup: cfg.DefaultGroup,
	})
}

func describeTarget(out io.Writer, cfg *config.Config, file *types.Buildfile, name string) error {
	target, ok := file.Target(name)
	if !ok {
		return errors.UnknownTarget(name, scheduler.Suggest(name, file.TargetNames()))
	}

	renderer := describe.NewRenderer()
	if cfg.ColorMode() == styles.ColorNever || os.Getenv("NO_COLOR") != "" {
		renderer.Style = "notty"
	}
	rendered, err := renderer.Render(target)
	if err != nil {
		log.Debug().Err(err).Msg("Markdown rendering failed, printing plain text")
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// splitArgs separates NAME=value variable overrides from target names.
// Target names never contain '=', so any argument with a non-empty name
// before '=' is an override.
func splitArgs(args []string) ([]string, map[string]string) {
	var targets []string
	overrides := make(map[string]string)
	for _, arg := range args {
		if i := strings.IndexByte(arg, '='); i > 0 {
			overrides[strings.TrimSpace(arg[:i])] = arg[i+1:]
			continue
		}
		targets = append(targets, arg)
	}
	return targets, overrides
}

// targetNamesCompletion provides shell completion for target names
func targetNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		cfg, err := config.Load(config.LoadOptions{})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		path = cfg.Buildfile
	}

	file, err := core.Load(core.LoadOptions{Path: path})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	// Filter out already specified targets
	var available []string
	for _, name := range file.TargetNames() {
		if !strings.HasPrefix(name, toComplete) || contains(args, name) {
			continue
		}
		available = append(available, name)
	}

	return available, cobra.ShellCompDirectiveNoFileComp
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
