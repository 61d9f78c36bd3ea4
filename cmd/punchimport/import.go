package main

import (
	"context"
	"fmt"
	"path/filepath"

	"attendance-ingest/internal/config"
	"attendance-ingest/internal/domain"
	"attendance-ingest/internal/gateway"
	"attendance-ingest/internal/gateway/postgres"
	"attendance-ingest/internal/gateway/redislock"
	"attendance-ingest/internal/logger"
	"attendance-ingest/internal/telemetry"
	"attendance-ingest/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importOptions struct {
	organizationID string
	file           string
	fileName       string
	diagnostic     bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse an export file and store its punches for an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.organizationID, "org", "", "Organization id (required)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the extracted export text (required)")
	cmd.Flags().StringVar(&opts.fileName, "name", "", "File name recorded on the upload log (default: base name of --file)")
	cmd.Flags().BoolVar(&opts.diagnostic, "diagnostic", false, "Only analyze the text, store nothing but the diagnostic report")

	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts importOptions) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defer log.Sync()

	shutdown := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.OTLPInsecure, log)
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("otel shutdown error", zap.Error(err))
		}
	}()

	text, err := gateway.NewTextFileReader(cfg.MaxTextChars).ReadText(ctx, opts.file)
	if err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DB_DSN is not set")
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	store := postgres.NewStore(db)

	ucOpts := []usecase.Option{usecase.WithMaxTextChars(cfg.MaxTextChars)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		ucOpts = append(ucOpts, usecase.WithImportLocker(redislock.NewLocker(rdb, cfg.ImportLockTTL)))
	} else {
		log.Info("REDIS_ADDR not set; concurrent imports are not locked")
	}

	ingestion := usecase.NewIngestionUseCase(store, store, store, store, store, log, ucOpts...)

	fileName := opts.fileName
	if fileName == "" {
		fileName = filepath.Base(opts.file)
	}
	resp, err := ingestion.Ingest(ctx, domain.IngestionRequest{
		TextContent:    text,
		OrganizationID: opts.organizationID,
		FileName:       fileName,
		DiagnosticMode: opts.diagnostic,
	})
	if err != nil {
		return err
	}

	if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if !resp.Success {
		return errUnsuccessful
	}
	return nil
}
