// codegend is the code generation engine server: it compiles prompts from
// templates, knowledge, and company rules, drives a pluggable LLM backend,
// runs the deterministic post-processing pipeline, and serves the result
// synchronously or through a bounded async job queue.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/codegend/pkg/api"
	"github.com/codeready-toolchain/codegend/pkg/audit"
	"github.com/codeready-toolchain/codegend/pkg/config"
	"github.com/codeready-toolchain/codegend/pkg/database"
	"github.com/codeready-toolchain/codegend/pkg/knowledge"
	"github.com/codeready-toolchain/codegend/pkg/llm"
	"github.com/codeready-toolchain/codegend/pkg/llmconfig"
	"github.com/codeready-toolchain/codegend/pkg/pipeline"
	"github.com/codeready-toolchain/codegend/pkg/prompt"
	"github.com/codeready-toolchain/codegend/pkg/queue"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
		log.Printf("continuing with existing environment variables")
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("failed to initialize configuration: %v", err)
	}

	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("failed to load database config: %v", err)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Printf("error closing database client: %v", err)
		}
	}()
	slog.Info("connected to postgres")

	knowledgeSelector := knowledge.NewSelector(
		knowledge.NewEntCatalog(dbClient.Client),
		cfg.Defaults.KnowledgeTokenBudget,
	)
	templates := prompt.NewEntLookup(dbClient.Client)
	companyRules := prompt.NewEntCompanyRuleProvider(dbClient.Client)
	compiler := prompt.NewCompiler(templates, knowledgeSelector, companyRules)

	resolver := llmconfig.NewResolver(llmconfig.NewEntProvider(dbClient.Client))
	backends := llm.NewBackendFactory()

	pipe := pipeline.New()
	auditSvc := audit.NewService(dbClient.Client)

	devModeFunc := func() bool { return cfg.Defaults.PipelineDevMode }
	processor := queue.NewGenerationProcessor(compiler, resolver, backends, pipe, auditSvc, devModeFunc)

	scheduler := queue.NewScheduler(cfg.Queue, processor)
	scheduler.Start(ctx)

	healthPing := func(pingCtx context.Context) error {
		resolved, err := resolver.Resolve(pingCtx)
		if err != nil {
			return err
		}
		backend, err := backends.New(pingCtx, resolved.Spec)
		if err != nil {
			return err
		}
		return backend.HealthCheck(pingCtx)
	}
	dbPing := func(pingCtx context.Context) error {
		_, err := database.Health(pingCtx, dbClient.DB())
		return err
	}

	server := api.NewServer(cfg, processor, scheduler, healthPing, dbPing)

	addr := ":" + getEnv("HTTP_PORT", httpPortFromConfig(cfg))
	slog.Info("starting codegend", "addr", addr, "config_dir", *configDir)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("http server error: %v", err)
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during http server shutdown: %v", err)
	}
	scheduler.Stop()
}

func httpPortFromConfig(cfg *config.Config) string {
	stats := cfg.Stats()
	if stats.ServerPort <= 0 {
		return "8080"
	}
	return strconv.Itoa(stats.ServerPort)
}
