package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/js-imports-order/pkg/config"
	"github.com/siyuan-infoblox/js-imports-order/pkg/errors"
	"github.com/siyuan-infoblox/js-imports-order/pkg/formatter"
	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
	"github.com/siyuan-infoblox/js-imports-order/pkg/report"
	"github.com/siyuan-infoblox/js-imports-order/pkg/version"
)

const (
	UseDescription   = "jio [flags] PATH..."
	ShortDescription = "JS imports order - check and fix the order of JavaScript/TypeScript imports"
	LongDescription  = `jio checks that import statements appear in a consistent order.

Imports are ordered by group:
1. Platform built-in modules (fs, node:path, ...)
2. Absolute imports (packages, aliases)
3. Parent imports (../), further up the tree first
4. Sibling imports (./)

Within a group imports are alphabetized (case-sensitive by default), and
blank lines between consecutive imports are reported unless allowed.

PATH can be a single source file or a directory. Directories are walked
recursively, skipping node_modules, vendor and hidden directories.

Settings are read from .importorder.yaml (searched upward from the first
PATH), JIO_* environment variables and flags, in increasing precedence.`
)

type rootOptions struct {
	cfgFile     string
	showVersion bool
}

// NewRootCmd creates the jio command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   UseDescription,
		Short: ShortDescription,
		Long:  LongDescription,
		Args: func(cmd *cobra.Command, args []string) error {
			// If version flag is set, we don't need path arguments
			if opts.showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "Config file (default: .importorder.yaml found upward from PATH)")
	flags.Bool("allow-blank-lines", false, "Allow blank lines between imports")
	flags.String("alphabetize", order.CaseSensitive.String(), "Ordering within a group ("+strings.Join(order.AlphabetizeValues(), "|")+")")
	flags.Bool("fix", false, "Rewrite files with the import order fixed")
	flags.StringP("format", "f", string(report.FormatText), "Output format (text|json|yaml)")
	flags.StringSlice("extensions", nil, "File extensions to check in directories (default .js,.mjs,.cjs,.jsx,.ts,.tsx,.mts,.cts)")
	flags.Bool("verbose", false, "Log progress to stderr")
	flags.BoolP("watch", "w", false, "Keep running and re-check files as they change")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	_ = rootCmd.RegisterFlagCompletionFunc("alphabetize", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return order.AlphabetizeValues(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, args []string, opts *rootOptions) error {
	// Handle version flag
	if opts.showVersion {
		return printVersion(cmd)
	}

	cfg, err := config.Load(opts.cfgFile, args[0], cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.File != "" {
		logger.Debug(errors.InfoMsgUsingConfigFile, slog.String("path", cfg.File))
	}

	g := formatter.New(formatter.FormatterConfig{
		Options:    cfg.Options(),
		Fix:        cfg.Fix,
		Extensions: cfg.Extensions,
		Format:     cfg.OutputFormat(),
		Out:        cmd.OutOrStdout(),
		Logger:     logger,
	})

	err = g.ProcessPaths(args)
	if !cfg.Watch {
		return err
	}
	if err != nil && !stderrors.Is(err, errors.ErrViolationsFound) {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Watch(ctx, args)
}

// buildInfo is what the toolchain stamped into the running binary
var buildInfo *debug.BuildInfo

// printVersion writes the version in the --format requested
func printVersion(cmd *cobra.Command) error {
	info := version.Get().FromBuildInfo(buildInfo)
	name, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}
	if format == report.FormatText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return err
	}
	return report.Encode(cmd.OutOrStdout(), format, info)
}

// Execute runs the root command. Remaining violations only set the exit
// status; the report already describes them.
func Execute(bi *debug.BuildInfo) error {
	buildInfo = bi
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !stderrors.Is(err, errors.ErrViolationsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
