package main

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pool, _, logger, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := database.Migrate(ctx, pool, logger)
			if err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			cmd.Printf("applied %d migration(s)\n", applied)
			return nil
		},
	}
}

type seedOptions struct {
	file    string
	useS3   bool
	migrate bool
}

func newSeedCommand() *cobra.Command {
	opts := &seedOptions{}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import products from a gzipped CSV seed file",
		Long: `Import products from a gzipped CSV seed file with the header
category,name,description,stock,price.

Categories are matched by name and created when missing. The import runs in a
single transaction: either every row is stored or none is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	seedCmd.Flags().StringVar(&opts.file, "file", "", "Seed file path (S3 key suffix when --s3 is set)")
	seedCmd.Flags().BoolVar(&opts.useS3, "s3", false, "Load the seed file from S3, falling back to the local path")
	seedCmd.Flags().BoolVar(&opts.migrate, "migrate", false, "Apply pending migrations before importing")
	_ = seedCmd.MarkFlagRequired("file")

	return seedCmd
}

func runSeed(cmd *cobra.Command, opts *seedOptions) error {
	ctx := cmd.Context()

	pool, cfg, logger, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if opts.migrate {
		if _, err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	loader, err := newSeedLoader(ctx, cfg.S3, opts.useS3, logger)
	if err != nil {
		return err
	}

	catalog, err := loader.Load(ctx, opts.file)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	importer := seed.NewImporter(
		repository.NewCategoryRepository(tx, logger),
		repository.NewProductRepository(tx, logger),
		logger,
	)

	result, err := importer.Import(ctx, catalog)
	if err != nil {
		return fmt.Errorf("failed to import seed file: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	cmd.Printf("imported %d product(s); %d category(ies) created, %d reused\n",
		result.ProductsCreated, result.CategoriesCreated, result.CategoriesReused)
	return nil
}

// newSeedLoader returns the local file loader, or an S3-first fallback loader when useS3 is set.
func newSeedLoader(ctx context.Context, cfg config.S3Config, useS3 bool, logger zerolog.Logger) (seed.Loader, error) {
	fileLoader := seed.NewFileLoader(logger)
	if !useS3 {
		return fileLoader, nil
	}

	if cfg.Bucket == "" {
		return nil, errors.New("--s3 requires S3_BUCKET to be set")
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader, nil
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, logger), nil
}

// connect loads the configuration and opens the database pool.
func connect(ctx context.Context) (*pgxpool.Pool, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to initialize database: %w", err)
	}

	return pool, cfg, logger, nil
}
