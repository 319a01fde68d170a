package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/grillo/pkg/pipeline"
	"github.com/go-go-golems/grillo/pkg/store"
)

// openStore picks the configured store: a SQLite DSN when given, otherwise a
// process-local in-memory store.
func openStore() (store.DocumentStore, func() error, error) {
	dsn := viper.GetString("store")
	if dsn == "" {
		return store.NewInMemoryStore(), func() error { return nil }, nil
	}
	s, err := store.NewSQLiteStore(dsn)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func newReplayCommand() *cobra.Command {
	var adminMode bool

	cmd := &cobra.Command{
		Use:   "replay [files...]",
		Short: "Replay raw generator responses through the ingestion pipeline",
		Long: `Replay feeds captured generator responses through the full pipeline
(extract, validate, merge, continuity, consistency) and reports the
resulting warnings and correction notices. Each file is ingested into its
own session, named after the file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docStore, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			p := pipeline.New(docStore, log.Logger)

			// One session per file, so concurrent replay keeps the
			// one-in-flight-turn-per-session contract.
			g, ctx := errgroup.WithContext(cmd.Context())
			outcomes := make([]*pipeline.TurnOutcome, len(args))
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					raw, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					outcome, err := p.RunTurn(ctx, sessionIDForFile(path), string(raw), pipeline.Options{AdminMode: adminMode})
					if err != nil {
						return err
					}
					outcomes[i] = outcome
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, outcome := range outcomes {
				printOutcome(cmd, args[i], outcome)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&adminMode, "admin", false, "Treat turns as administrative (god-mode) turns")
	return cmd
}

// sessionIDForFile derives a stable session id from a response file path.
// The full cleaned path keeps same-named files in different directories in
// separate sessions.
func sessionIDForFile(path string) string {
	cleaned := filepath.Clean(path)
	return strings.TrimSuffix(cleaned, filepath.Ext(cleaned))
}

func printOutcome(cmd *cobra.Command, path string, outcome *pipeline.TurnOutcome) {
	cmd.Printf("== %s (session %s)\n", path, outcome.SessionID)
	if outcome.Failure != nil {
		cmd.Printf("   extraction failed: %s\n", outcome.Failure.Reason)
	}
	cmd.Printf("   narrative: %s\n", firstLine(outcome.Narrative))
	for _, w := range outcome.Warnings {
		cmd.Printf("   warning: %s\n", w)
	}
	for _, n := range outcome.Notices {
		cmd.Printf("   notice: %s\n", n)
	}
	if !outcome.Persisted {
		fmt.Fprintln(cmd.OutOrStdout(), "   document not persisted")
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
