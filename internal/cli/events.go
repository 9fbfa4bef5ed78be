package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/aliskhannn/loftfit-bot/internal/config"
	"github.com/aliskhannn/loftfit-bot/internal/infra/postgres"
	"github.com/aliskhannn/loftfit-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/loftfit-bot/migrations"
)

// EventStore is the recorded-event database as seen by the CLI.
type EventStore interface {
	CountByName(ctx context.Context, since time.Time) (map[string]int64, error)
	Migrate(ctx context.Context, fsys fs.FS) ([]string, error)
}

// StoreOpener connects to the event store. The returned func releases it.
type StoreOpener func(ctx context.Context) (EventStore, func(), error)

type pgEventStore struct {
	*repository.EventRepository
	pool *pgxpool.Pool
}

func (s *pgEventStore) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	return postgres.NewTransactor(s.pool).MigrateTx(ctx, fsys)
}

func openEventStore(ctx context.Context) (EventStore, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, fmt.Errorf("DATABASE_URL: %w", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := &pgEventStore{
		EventRepository: repository.NewEventRepository(pool),
		pool:            pool,
	}
	return store, pool.Close, nil
}

// NewEventsCommand creates the 'loftctl events' command group.
func NewEventsCommand(open StoreOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect quiz events recorded in Postgres",
		Long: `Commands for the quiz_events table the bot writes when DATABASE_URL is set.
The connection string is read from DATABASE_URL (a .env file works too).`,
	}

	cmd.AddCommand(newEventsCountCommand(open))
	cmd.AddCommand(newEventsMigrateCommand(open))

	return cmd
}

func newEventsCountCommand(open StoreOpener) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count recorded events by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			counts, err := store.CountByName(cmd.Context(), time.Now().Add(-since))
			if err != nil {
				return err
			}

			printEventCounts(cmd.OutOrStdout(), counts, since)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "how far back to count")

	return cmd
}

func printEventCounts(w io.Writer, counts map[string]int64, since time.Duration) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintf(w, "Quiz events in the last %s\n", since)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  no events\n")
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %d\n", name, counts[name])
	}
}

func newEventsMigrateCommand(open StoreOpener) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the quiz_events schema",
		Long: `Apply the SQL migrations. The embedded migrations are used unless --dir
points to a directory of *.sql files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fsys fs.FS = migrations.FS
			if dir != "" {
				fsys = os.DirFS(dir)
			}

			store, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			applied, err := store.Migrate(cmd.Context(), fsys)
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "  applied %s\n", name)
			}
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", len(applied))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory with *.sql migrations")

	return cmd
}
