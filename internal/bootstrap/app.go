package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	openai "resume-analyzer/internal/llm/openai"
	"resume-analyzer/internal/records"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/awsconf"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/storage/object"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	s3store "resume-analyzer/internal/shared/storage/object/s3"
	"resume-analyzer/internal/shared/telemetry"
)

// DiagnosticLine is written by WriteDiagnostic.
const DiagnosticLine = "Something was executed.\n"

// App holds the wired dependencies of the API process.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	LLM             llm.Client
	Sink            records.Sink
	Archive         object.Store
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service
}

// Build constructs every service handle from cfg and mounts the routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := buildSink(ctx, cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &analyses.Service{
		Extractor: extract.NewPDFExtractor(),
		LLM:       llmClient,
		Sink:      sink,
		Archive:   archive,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		LLM:             llmClient,
		Sink:            sink,
		Archive:         archive,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc),
		Health:          health.NewService(cfg.LLMAPIKey != "", cfg.PersistBackend, cfg.ArchiveStoreType),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"llm_configured":  cfg.LLMAPIKey != "",
		"llm_model":       cfg.LLMModel,
		"persist_backend": cfg.PersistBackend,
		"archive_store":   cfg.ArchiveStoreType,
	})
	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// WriteDiagnostic writes the startup diagnostic line to w.
func WriteDiagnostic(w io.Writer) error {
	_, err := io.WriteString(w, DiagnosticLine)
	return err
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMAPIKey == "" {
		telemetry.Warn("bootstrap.llm_not_configured", map[string]any{
			"hint": "set GROQ_API_KEY to enable analysis",
		})
		return llm.PlaceholderClient{}, nil
	}
	client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel,
		openai.WithBaseURL(cfg.LLMBaseURL),
		openai.WithTimeout(cfg.LLMTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}
	return client, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.PersistBackend != "postgres" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("PERSIST_BACKEND=postgres requires DATABASE_URL")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildSink(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (records.Sink, error) {
	switch cfg.PersistBackend {
	case "postgres":
		return &records.PGSink{DB: sqlDB}, nil
	case "dynamodb":
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return records.NewDynamoSink(awsCfg, cfg.DynamoTable), nil
	case "memory":
		return records.NewMemorySink(), nil
	default:
		return records.NopSink{}, nil
	}
}

func buildArchive(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ArchiveStoreType {
	case "s3":
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3store.New(awsCfg, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

func loadAWS(ctx context.Context, cfg config.Config) (aws.Config, error) {
	return awsconf.Load(ctx, awsconf.Options{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretKey,
	})
}
