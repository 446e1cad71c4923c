package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/irecli/ire/internal/finder"
	"github.com/irecli/ire/internal/tailer"
	"github.com/irecli/ire/internal/tui"
	"github.com/irecli/ire/pkg/ire"
	"github.com/irecli/ire/pkg/ire/pattern"
)

var (
	globPattern string
	outputPath  string
	formatName  string
	engineName  string
	initPattern string
	presetPath  string
	follow      bool
	once        bool
	showVersion bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "ire [flags] [FILENAME]",
	Short: "Interactive regular expression tester",
	Long: `Apply a regular expression to the lines of text files and watch the
matches and capture groups update live as you edit the pattern.

Examples:
  # Open a file interactively
  ire access.log

  # Test against every matching file
  ire -g 'logs/*.log'

  # Enable CSV export of captured groups to out.csv (press x in the UI)
  ire -o out.csv access.log

  # Non-interactive: print matches for a fixed pattern and exit
  ire --once --pattern '(\d+)-(\d+)' numbers.txt

  # Follow a growing file
  ire --follow service.log`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&globPattern, "glob", "g", "",
		"Glob pattern selecting input files (overrides FILENAME)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Destination file for capture export")
	rootCmd.Flags().StringVarP(&formatName, "format", "f", "csv",
		"Export format: csv, tsv")
	rootCmd.Flags().StringVar(&engineName, "engine", "go",
		"Regex engine: go, regexp2 (backreferences/lookarounds)")
	rootCmd.Flags().StringVarP(&initPattern, "pattern", "p", "",
		"Initial pattern (required with --once)")
	rootCmd.Flags().StringVar(&presetPath, "patterns", "",
		"YAML file of preset patterns to cycle through")
	rootCmd.Flags().BoolVar(&follow, "follow", false,
		"Keep reading appended lines (single file only)")
	rootCmd.Flags().BoolVar(&once, "once", false,
		"Print results once and exit instead of opening the UI")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false,
		"Print version and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose diagnostics on stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runRoot(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	}

	filename := ""
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "" && globPattern == "" {
		return errors.New("a FILENAME argument or --glob pattern is required")
	}
	if follow && once {
		return errors.New("--follow and --once are mutually exclusive")
	}

	engine, err := pattern.ParseEngine(engineName)
	if err != nil {
		return err
	}
	exportFormat, err := ire.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logger := newLogger()

	paths, err := finder.Resolve(filename, globPattern)
	if err != nil {
		return err
	}
	if follow && len(paths) > 1 {
		return fmt.Errorf("--follow needs a single file, matched %d", len(paths))
	}
	logger.Debug("resolved input files", "count", len(paths))

	docs, err := ire.LoadDocuments(paths)
	if err != nil {
		return err
	}

	sess := ire.NewSession(docs, engine)
	if presetPath != "" {
		pf, err := pattern.LoadPresets(presetPath)
		if err != nil {
			return fmt.Errorf("loading presets: %w", err)
		}
		sess.SetPresets(pf.Presets)
		logger.Debug("loaded presets", "count", len(pf.Presets))
	}

	if once || !term.IsTerminal(int(os.Stdout.Fd())) {
		if !once {
			logger.Debug("stdout is not a terminal, printing once")
		}
		return runOnce(sess, exportFormat, cmd.OutOrStdout(), logger)
	}
	return runInteractive(sess, exportFormat, paths[0], logger)
}

// runOnce applies the fixed pattern, prints the result, optionally exports,
// and exits. Used for --once and whenever stdout is not a terminal.
func runOnce(sess *ire.Session, format ire.ExportFormat, out io.Writer, logger *slog.Logger) error {
	if initPattern == "" {
		return errors.New("non-interactive mode requires --pattern")
	}
	if err := sess.SetPattern(initPattern); err != nil {
		return err
	}

	d := ire.BuildDisplay(sess.Documents(), sess.Results())
	if err := printDisplay(out, d); err != nil {
		return err
	}

	if outputPath != "" {
		n, err := sess.ExportFile(outputPath, format)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Info("exported captures", "records", n, "path", outputPath)
	}
	return nil
}

func runInteractive(sess *ire.Session, format ire.ExportFormat, firstPath string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tl *tailer.Tailer
	if follow {
		var err error
		tl, err = tailer.New(ctx, firstPath, tailer.DefaultConfig())
		if err != nil {
			return fmt.Errorf("follow: %w", err)
		}
		defer func() {
			if err := tl.Stop(); err != nil {
				logger.Debug("stopping tailer", "error", err)
			}
		}()
	}

	m := tui.New(sess, tui.Config{
		InitialPattern: initPattern,
		ExportPath:     outputPath,
		ExportFormat:   format,
		Tail:           tl,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	sess.Terminate()
	return nil
}
