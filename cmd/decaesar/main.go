// Package main provides the CLI entrypoint for decaesar.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/decaesar/internal/cipher"
	"github.com/verte-zerg/decaesar/internal/config"
	"github.com/verte-zerg/decaesar/internal/decrypt"
	"github.com/verte-zerg/decaesar/internal/freq"
	"github.com/verte-zerg/decaesar/internal/model"
	"github.com/verte-zerg/decaesar/internal/reference"
	"github.com/verte-zerg/decaesar/internal/report"
	"github.com/verte-zerg/decaesar/internal/store"
	"github.com/verte-zerg/decaesar/internal/tui"
	"github.com/verte-zerg/decaesar/internal/watch"
)

var (
	analysisDistribution    string
	analysisIncludeIdentity bool
	analysisTextFile        string
	historyEnabled          = true

	inputText string
	inputFile string

	decryptCandidates int
	decryptProfile    bool

	encryptShift  int
	encryptRandom bool

	historySince  string
	historyLast   int
	historySource string
	historyShifts bool
	historyClear  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "decaesar",
		Short:         "Break Caesar ciphers with letter frequency analysis",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runShellCmd,
	}

	rootCmd.PersistentFlags().StringVar(&analysisDistribution, "distribution", "", "reference frequency file (default: built-in English)")
	rootCmd.PersistentFlags().BoolVar(&analysisIncludeIdentity, "include-identity", false, "also consider shift 0")
	rootCmd.Flags().StringVar(&analysisTextFile, "text-file", config.DefaultTextFile, "file read by the file command")

	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDistCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadAnalysisConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "distribution", &analysisDistribution, fileCfg.Analysis.Distribution)
	applyBoolConfig(cmd, "include-identity", &analysisIncludeIdentity, fileCfg.Analysis.IncludeIdentity)
	applyStringConfig(cmd, "text-file", &analysisTextFile, fileCfg.Analysis.TextFile)
	applyStringConfig(cmd, "file", &analysisTextFile, fileCfg.Analysis.TextFile)
	if fileCfg.History.Enabled != nil {
		historyEnabled = *fileCfg.History.Enabled
	}
	return model.Config{
		DistributionPath: analysisDistribution,
		IncludeIdentity:  analysisIncludeIdentity,
		TextFile:         analysisTextFile,
		History:          historyEnabled,
	}, nil
}

// newService builds the decryption service. The returned close func releases
// the history store and is never nil.
func newService(cfg model.Config) (*decrypt.Service, func(), error) {
	ref, err := reference.Resolve(cfg.DistributionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load distribution: %w", err)
	}

	var rec decrypt.Recorder
	closeFn := func() {}
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open db, history disabled: %v\n", err)
		} else {
			rec = st
			closeFn = func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}
		}
	}

	svc, err := decrypt.New(ref, freq.Options{IncludeIdentity: cfg.IncludeIdentity}, rec)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid distribution: %w", err)
	}
	return svc, closeFn, nil
}

func runShellCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	program := tea.NewProgram(tui.NewModel(svc, cfg.TextFile), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputText, "text", "", "text to process")
	cmd.Flags().StringVar(&inputFile, "file", "", "read text from file")
}

// readInput returns the text selected by --text, --file or piped stdin, and
// its history source label.
func readInput(cmd *cobra.Command) (string, string, error) {
	textSet := cmd.Flags().Changed("text")
	fileSet := cmd.Flags().Changed("file")
	if textSet && fileSet {
		return "", "", fmt.Errorf("--text and --file are mutually exclusive")
	}
	switch {
	case textSet:
		return inputText, model.SourceText, nil
	case fileSet:
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", inputFile, err)
		}
		return string(data), model.SourceFile + inputFile, nil
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", "", fmt.Errorf("no input: use --text, --file or pipe text on stdin")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), model.SourceStdin, nil
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text and print the best shift",
		Args:  cobra.NoArgs,
		RunE:  runDecryptCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().IntVar(&decryptCandidates, "candidates", 0, "also print the N best rotations")
	cmd.Flags().BoolVar(&decryptProfile, "profile", false, "print letter frequencies of the result")
	return cmd
}

func runDecryptCmd(cmd *cobra.Command, _ []string) error {
	if decryptCandidates < 0 {
		return fmt.Errorf("--candidates must be >= 0")
	}
	cfg, err := loadAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd)
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := svc.Decrypt(cmd.Context(), source, text)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := report.RenderResult(out, res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if decryptCandidates > 0 {
		candidates, err := freq.Rank(text, svc.Reference())
		if err != nil {
			return fmt.Errorf("failed to rank rotations: %w", err)
		}
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.RenderCandidates(out, candidates, decryptCandidates); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if decryptProfile {
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.RenderProfile(out, res.Text, svc.Reference(), 0, false); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with a Caesar shift",
		Args:  cobra.NoArgs,
		RunE:  runEncryptCmd,
	}
	addInputFlags(cmd)
	cmd.Flags().IntVar(&encryptShift, "shift", 0, "shift to apply")
	cmd.Flags().BoolVar(&encryptRandom, "random", false, "pick a random shift in 1..25")
	return cmd
}

func runEncryptCmd(cmd *cobra.Command, _ []string) error {
	shiftSet := cmd.Flags().Changed("shift")
	if shiftSet == encryptRandom {
		return fmt.Errorf("exactly one of --shift or --random is required")
	}
	text, _, err := readInput(cmd)
	if err != nil {
		return err
	}
	k := encryptShift
	if encryptRandom {
		k = cipher.New().RandomShift()
		logErrf("shift: %d\n", k)
	}
	out := cipher.Encrypt(text, k)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Decrypt a file every time it changes",
		Args:  cobra.NoArgs,
		RunE:  runWatchCmd,
	}
	cmd.Flags().StringVar(&analysisTextFile, "file", config.DefaultTextFile, "file to watch")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	source := model.SourceFile + cfg.TextFile
	w, err := watch.New(cfg.TextFile, func(text string) {
		res, err := svc.Decrypt(ctx, source, text)
		if err != nil {
			logErrf("%v\n", err)
			return
		}
		if _, err := fmt.Fprintf(out, "--- %s\n", time.Now().Format("15:04:05")); err != nil {
			logErrf("failed to write output: %v\n", err)
			return
		}
		if err := report.RenderResult(out, res); err != nil {
			logErrf("failed to write output: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.TextFile, err)
	}
	w.SetErrorHandler(func(err error) {
		logErrf("watch: %v\n", err)
	})
	logErrf("Watching %s (ctrl+c to stop)\n", cfg.TextFile)
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.TextFile, err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N analyses")
	cmd.Flags().StringVar(&historySource, "source", "", "source prefix filter (keyboard, stdin, text, file:)")
	cmd.Flags().BoolVar(&historyShifts, "shifts", false, "count analyses per shift")
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded analyses")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	switch {
	case historyClear:
		n, err := st.Clear(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if _, err := fmt.Fprintf(out, "Removed %d analyses\n", n); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	case historyShifts:
		counts, err := st.ShiftCounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to count shifts: %w", err)
		}
		if err := report.RenderShiftCounts(out, counts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	default:
		records, err := st.ListAnalyses(ctx, model.HistoryFilter{
			Since:  sinceTime,
			Source: historySource,
			Last:   historyLast,
		})
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.RenderHistory(out, records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dist",
		Short: "Print the reference letter frequencies",
		Args:  cobra.NoArgs,
		RunE:  runDistCmd,
	}
}

func runDistCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	ref, err := reference.Resolve(cfg.DistributionPath)
	if err != nil {
		return fmt.Errorf("failed to load distribution: %w", err)
	}
	if err := report.RenderDistribution(cmd.OutOrStdout(), ref); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# decaesar configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# distribution = ""          # Reference frequency file, 26 percentages a-z (default: built-in English)
# include-identity = false   # Also consider shift 0
# text-file = %q  # File read by the interactive file command and watch

[history]
# enabled = true             # Record analyses in %s
`,
		config.DefaultTextFile,
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
