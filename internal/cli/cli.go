package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hosgoru/vugraph-archive/internal/config"
	"github.com/hosgoru/vugraph-archive/internal/dds"
	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/export"
	"github.com/hosgoru/vugraph-archive/internal/logger"
	"github.com/hosgoru/vugraph-archive/internal/pipeline"
	"github.com/hosgoru/vugraph-archive/internal/store"
	"github.com/hosgoru/vugraph-archive/internal/vugraph"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitInvariant = 2
	ExitNetwork   = 3
	ExitSolver    = 4
)

const dateLayout = "2006-01-02"

var (
	flagFrom        string
	flagTo          string
	flagMissingOnly bool
	flagEvent       string
	flagVerbose     bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vugraph-archive",
		Short: "Archive Vugraph tournament boards with double-dummy analysis",
		Long: `A CLI tool that scrapes club tournament boards from Vugraph into a
JSON hand store and annotates them with double-dummy trick tables,
par contracts and Law-of-Total-Tricks statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Run a refresh pass over a date range and solve new boards",
		RunE:  runFetch,
	}
	fetch.Flags().StringVar(&flagFrom, "from", "", "Start date (YYYY-MM-DD, default 30 days ago)")
	fetch.Flags().StringVar(&flagTo, "to", "", "End date (YYYY-MM-DD, default today)")

	solve := &cobra.Command{
		Use:   "solve",
		Short: "Run double-dummy analysis over stored boards",
		RunE:  runSolve,
	}
	solve.Flags().BoolVar(&flagMissingOnly, "missing-only", true, "Only solve boards without a trick table")

	exportCmd := &cobra.Command{
		Use:   "export (pbn|lin) <path>",
		Short: "Dump stored boards as PBN or LIN",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&flagEvent, "event", "", "Limit to one event id")

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import boards from a LIN file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&flagEvent, "event", "", "Event id to file the boards under (required)")
	importCmd.MarkFlagRequired("event")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check every store invariant",
		RunE:  runVerify,
	}

	cmd.AddCommand(fetch, solve, exportCmd, importCmd, verify)
	return cmd
}

// Execute runs the CLI and maps the resulting error onto an exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, pipeline.ErrNetworkExhausted):
		return ExitNetwork
	case errors.Is(err, dds.ErrSolverFailure):
		return ExitSolver
	case errors.Is(err, deal.ErrDealInconsistent),
		errors.Is(err, deal.ErrInvalidHand),
		errors.Is(err, deal.ErrCardCountMismatch),
		errors.Is(err, store.ErrIdentityConflict):
		return ExitInvariant
	default:
		return ExitError
	}
}

// newPipeline assembles the pipeline from configuration.
func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	if removed := st.Dedup(); removed > 0 {
		logger.Info("collapsed duplicate records", logger.Fields{"removed": removed})
	}

	var backend dds.Backend = dds.Solver{}
	if url := cfg.SolverURL(); url != "" {
		backend = dds.NewRemoteBackend(url)
	}

	client := vugraph.NewClient(cfg.BaseURL, cfg.RateLimit)
	return pipeline.New(client, st, dds.NewAdapter(backend, 0)), nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	from, to, err := fetchWindow(flagFrom, flagTo)
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	logger.Info("starting refresh pass", logger.Fields{
		"from": from.Format(dateLayout), "to": to.Format(dateLayout),
	})
	if err := p.Refresh(cmd.Context(), from, to); err != nil {
		return err
	}
	if err := p.SolveMissing(cmd.Context()); err != nil {
		return err
	}
	p.Counters.Summary(os.Stdout)
	return nil
}

func fetchWindow(fromText, toText string) (time.Time, time.Time, error) {
	to := time.Now().UTC().Truncate(24 * time.Hour)
	if toText != "" {
		parsed, err := time.Parse(dateLayout, toText)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -30)
	if fromText != "" {
		parsed, err := time.Parse(dateLayout, fromText)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
		from = parsed
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to %s",
			from.Format(dateLayout), to.Format(dateLayout))
	}
	return from, to, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	if flagMissingOnly {
		err = p.SolveMissing(cmd.Context())
	} else {
		err = p.SolveAll(cmd.Context())
	}
	if err != nil {
		return err
	}
	p.Counters.Summary(os.Stdout)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, path := args[0], args[1]
	if format != "pbn" && format != "lin" {
		return fmt.Errorf("unknown export format %q (want pbn or lin)", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}

	records := st.Scan(store.Filter{EventID: flagEvent})
	if len(records) == 0 {
		return fmt.Errorf("no boards to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if format == "pbn" {
		err = export.WritePBN(f, records)
	} else {
		err = export.WriteLIN(f, records)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d boards to %s\n", len(records), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	records, err := export.ReadLIN(f, flagEvent)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, err := st.Upsert(rec.Key(), rec); err != nil {
			return err
		}
	}
	if err := st.Save(); err != nil {
		return err
	}

	fmt.Printf("Imported %d boards from %s\n", len(records), args[0])
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}

	p := pipeline.Pipeline{Store: st}
	violations := p.Verify()
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "violation: %v\n", v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d invariant violations: %w", len(violations), errors.Join(violations...))
	}

	fmt.Printf("OK: %d records verified\n", st.Len())
	return nil
}
