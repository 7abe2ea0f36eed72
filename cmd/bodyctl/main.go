package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pg "bodycomp-notion/internal/adapters/storage/postgres"
	"bodycomp-notion/internal/adapters/store/notion"
	"bodycomp-notion/internal/config"
	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/domain/measurements"
	"bodycomp-notion/internal/platform/logger"
)

func main() {
	if err := newRootCmd(loadService).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serviceLoader arma el service; cleanup libera conexiones abiertas.
type serviceLoader func(ctx context.Context) (svc *measurements.Service, cleanup func(), err error)

func loadService(ctx context.Context) (*measurements.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "bodyctl",
		Output: os.Stderr,
	})

	client, err := notion.NewClient(notion.Config{
		BaseURL: cfg.NotionBaseURL,
		APIKey:  cfg.NotionAPIKey,
		Version: cfg.NotionVersion,
		Timeout: cfg.NotionTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	st, err := notion.NewStore(client, log)
	if err != nil {
		return nil, nil, err
	}

	// Sin DB_DSN el CLI no deja rastro en el journal.
	if cfg.DBDSN == "" {
		return measurements.NewService(st, cfg.NotionDatabase, nil, log), func() {}, nil
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	rec := journal.NewService(pg.NewJournalRepo(db))
	return measurements.NewService(st, cfg.NotionDatabase, rec, log), func() { _ = db.Close() }, nil
}

func newRootCmd(load serviceLoader) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "bodyctl",
		Short:         "Body composition measurements in Notion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutput(output)
		},
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text|json|yaml")

	root.AddCommand(newDatabasesCmd(load, &output))
	root.AddCommand(newSchemaCmd(load))
	root.AddCommand(newPushCmd(load, &output))
	return root
}

func newDatabasesCmd(load serviceLoader, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases shared with the integration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := load(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.ListCollections(ctx)
			if err != nil {
				return err
			}

			rows := make([]databaseView, 0, len(list.Results))
			for _, c := range list.Results {
				rows = append(rows, databaseView{ID: c.ID, Title: c.Title})
			}

			if *output == "text" {
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no databases")
					return nil
				}
				for _, r := range rows {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, r.Title)
				}
				return nil
			}
			return render(cmd.OutOrStdout(), *output, rows)
		},
	}
}

func newSchemaCmd(load serviceLoader) *cobra.Command {
	var unit, database string

	cmd := &cobra.Command{
		Use:   "schema --unit kg|lb",
		Short: "Declare the measurement columns for a unit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := measurements.ParseUnit(unit)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, cleanup, err := load(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeclareSchema(ctx, database, u); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "columns declared for %s\n", u)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "unit: kg|lb")
	cmd.Flags().StringVar(&database, "database", "", "database id (default NOTION_DATABASE or first listed)")
	return cmd
}

func newPushCmd(load serviceLoader, output *string) *cobra.Command {
	var req measurements.CreateRequest
	var weight, fatMass, fatMassPercent, leanMass float64

	cmd := &cobra.Command{
		Use:   "push --date <date> --unit kg|lb --weight N --fat-mass N --fat-mass-percent N --lean-mass N",
		Short: "Write one measurement row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("weight") {
				req.Weight = &weight
			}
			if flags.Changed("fat-mass") {
				req.FatMass = &fatMass
			}
			if flags.Changed("fat-mass-percent") {
				req.FatMassPercent = &fatMassPercent
			}
			if flags.Changed("lean-mass") {
				req.LeanMass = &leanMass
			}

			m, err := req.Measurement()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, cleanup, err := load(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			row, err := svc.Ingest(ctx, journal.SourceCLI, m)
			if err != nil {
				return err
			}

			if *output == "text" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s %s\n", row.ID, row.URL)
				return nil
			}
			return renderRaw(cmd.OutOrStdout(), *output, row.Raw)
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", `measurement date, e.g. "January 05, 2024 at 02:30PM"`)
	cmd.Flags().StringVar(&req.Unit, "unit", "", "unit: kg|lb")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight")
	cmd.Flags().Float64Var(&fatMass, "fat-mass", 0, "fat mass")
	cmd.Flags().Float64Var(&fatMassPercent, "fat-mass-percent", 0, "fat mass percent (0-100)")
	cmd.Flags().Float64Var(&leanMass, "lean-mass", 0, "lean mass")
	return cmd
}
