package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairandomizer-backend/config"
	"pairandomizer-backend/handlers"
	"pairandomizer-backend/logger"
	"pairandomizer-backend/services"
	"pairandomizer-backend/storage"
	"pairandomizer-backend/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	var lang string
	generateCmd := &cobra.Command{
		Use:   "generate [names...]",
		Short: "Load the catalog once and print a randomized pairing",
		Long: "Load the catalog once and print a randomized pairing. Names given as " +
			"arguments replace the stored name list; without arguments the stored list is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, lang)
		},
	}
	generateCmd.Flags().StringVar(&lang, "lang", "", "locale used for scenario filtering (defaults to DEFAULT_LOCALE)")

	rootCmd := &cobra.Command{
		Use:          "pairandomizer",
		Short:        "Party-game pairing randomizer backend",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	rootCmd.AddCommand(serveCmd, generateCmd)
	return rootCmd
}

// app bundles the services shared by both commands
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    storage.Store
	catalog  *services.CatalogService
	state    *services.StateService
	generate *services.GenerateService
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
	})
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Error("Failed to open store", zap.Error(err))
		return nil, err
	}

	fetcher := services.NewCatalogFetcher(cfg.ServerURL, &http.Client{Timeout: cfg.FetchTimeout}, log)
	catalogService := services.NewCatalogService(fetcher, log)
	stateService := services.NewStateService(store, log)
	generateService := services.NewGenerateService(catalogService, stateService, nil, log)

	return &app{
		cfg:      cfg,
		logger:   log,
		store:    store,
		catalog:  catalogService,
		state:    stateService,
		generate: generateService,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StoreBackend == "memory" {
		return storage.NewMemStore(), nil
	}
	if err := utils.EnsureDir(cfg.StorePath); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return storage.NewBadgerStore(cfg.StorePath)
}

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial catalog load runs in the background; generate stays disabled until it succeeds
	if err := a.catalog.StartLoad(ctx); err != nil {
		a.logger.Error("Failed to start catalog load", zap.Error(err))
	}

	catalogHandler := handlers.NewCatalogHandler(a.catalog, ctx, a.logger)
	stateHandler := handlers.NewStateHandler(a.state, a.logger)
	generateHandler := handlers.NewGenerateHandler(a.generate, a.cfg.DefaultLocale, a.logger)

	r := mux.NewRouter()
	r.Use(createLoggingMiddleware(a.logger))
	handlers.RegisterRoutes(r, catalogHandler, stateHandler, generateHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	server := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: corsHandler.Handler(r),
	}

	a.logger.Info("Starting server",
		zap.String("port", a.cfg.Port),
		zap.String("catalog", a.cfg.ServerURL),
		zap.String("store", a.cfg.StoreBackend))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runGenerate(cmd *cobra.Command, names []string, lang string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	catalog, err := a.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	a.logger.Debug("Catalog ready", zap.String("server", catalog.Index.ServerName))

	if len(names) > 0 {
		a.state.SetNames(names)
	}
	if lang == "" {
		lang = a.cfg.DefaultLocale
	}

	result, err := a.generate.Generate(lang)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Title)
	for _, pairing := range result.Pairings {
		fmt.Fprintln(out, pairing.Text)
	}
	return nil
}

// createLoggingMiddleware creates middleware for logging requests
func createLoggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Capture the status code for the log line
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			log.Info("Request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
