// Xigiled chatbot backend: a conversational sales configurator for LED
// panels. It serves the public chat API, the Basic Auth admin API, and
// Prometheus metrics from a single process.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/config"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/knowledge"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/knowledge/provider"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/metrics"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/persistence"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/session"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/version"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/webui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	var port int
	var dbPath string
	var debug bool
	flag.StringVar(&configPath, "config", "", "Path to config file (JSON)")
	flag.IntVar(&port, "port", 0, "Override listen port from config")
	flag.StringVar(&dbPath, "db", "", "Override SQLite database path from config")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("XIGILED_CONFIG")
	}
	if configPath == "" {
		configPath = "config.json"
	}

	if err := run(configPath, port, dbPath, debug); err != nil {
		fmt.Fprintf(os.Stderr, "xigiled-chatbot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, portOverride int, dbOverride string, debug bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if portOverride != 0 {
		cfg.Port = portOverride
	}
	if dbOverride != "" {
		cfg.DatabasePath = dbOverride
	}
	if debug {
		cfg.Debug = true
	}
	logx.SetDebug(cfg.Debug)

	logger := logx.NewLogger("main")
	logger.Info("xigiled chatbot backend %s (commit %s) starting", version.Version, version.Commit)

	if err := loadSecrets(logger); err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load panel catalog: %w", err)
	}

	db, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
	}
	defer db.Close()
	store := persistence.NewStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	answerer, err := buildAnswerer(ctx, cfg, cat, logger)
	if err != nil {
		return err
	}

	recorder := metrics.NewPrometheusRecorder()
	var queries *metrics.QueryService
	if cfg.Prometheus != nil && cfg.Prometheus.BaseURL != "" {
		queries, err = metrics.NewQueryService(cfg.Prometheus.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create Prometheus query service: %w", err)
		}
		logger.Info("ops summary enabled against %s", cfg.Prometheus.BaseURL)
	}

	engine := bot.NewEngine(cat, answerer, store, recorder)

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	go sessions.Run(ctx)

	srv := webui.NewServer(engine, sessions, store, queries, cfg)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received %v, shutting down", sig)
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown incomplete: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// loadSecrets decrypts the secrets file when one exists. The master password
// comes from XIGILED_MASTER_PASSWORD, or a terminal prompt when stdin is a
// TTY. A missing secrets file is fine: secrets then come from the
// environment on demand.
func loadSecrets(logger *logx.Logger) error {
	if !config.SecretsFileExists(".") {
		logger.Debug("no secrets file found, falling back to environment variables")
		return nil
	}

	password := os.Getenv("XIGILED_MASTER_PASSWORD")
	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("secrets file present but XIGILED_MASTER_PASSWORD is not set and stdin is not a terminal")
		}
		fmt.Print("Enter master password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	secrets, err := config.DecryptSecretsFile(".", password)
	if err != nil {
		return fmt.Errorf("failed to decrypt secrets file: %w", err)
	}
	config.SetDecryptedSecrets(secrets)
	logger.Info("loaded %d secrets from encrypted store", len(secrets))
	return nil
}

// buildAnswerer wires the LLM knowledge fallback, or returns nil when the
// provider is "none" so the engine answers from the catalog alone.
func buildAnswerer(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, logger *logx.Logger) (bot.Answerer, error) {
	client, err := provider.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm provider %s: %w", cfg.LLM.Provider, err)
	}
	if client == nil {
		logger.Info("no llm provider configured, knowledge fallback disabled")
		return nil, nil
	}

	counter, err := knowledge.NewTokenCounter()
	if err != nil {
		logger.Warn("tokenizer unavailable, using approximate token counts: %v", err)
		counter = nil
	}

	logger.Info("knowledge fallback using provider %s model %s", cfg.LLM.Provider, cfg.LLM.Model)
	return knowledge.NewService(cat, client, counter, cfg.LLM.PromptBudget), nil
}
