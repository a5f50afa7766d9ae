package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"exaura_site/internal/config"
	"exaura_site/internal/handlers"
	"exaura_site/internal/logger"
	"exaura_site/internal/router"
	"exaura_site/internal/services"
	"exaura_site/internal/storage"
)

var (
	configPath string
	devMode    bool
	port       int
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	cmd.Flags().BoolVar(&devMode, "dev", false, "Run in development mode (proxy to Vite)")
	cmd.Flags().IntVar(&port, "port", 0, "Port to run the server on (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("dev") {
		cfg.Server.Dev = devMode
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Dev); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Server.Dev {
		logger.SetLevel(slog.LevelDebug)
	}
	log := logger.Get()

	gin.SetMode(cfg.Server.Mode)

	// 1. Initialize Services
	translator := services.NewFileTranslationService(cfg.Translations.Dir)
	if err := translator.LoadTranslations(); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	if cfg.Translations.RemoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := translator.LoadRemote(ctx, cfg.Translations.RemoteLanguage, cfg.Translations.RemoteURL)
		cancel()
		if err != nil {
			logger.Error("failed to load remote translations", "url", cfg.Translations.RemoteURL, "error", err)
		}
	}
	logger.Info("translations loaded", "languages", translator.Languages())

	db, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	contactRepo := storage.NewContactRepository(db)

	var kv storage.KVStore
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("redis connection established", "address", cfg.Redis.GetAddr())
		kv = storage.NewRedisStore(redisClient)
	} else {
		logger.Warn("redis not configured, consent choices are kept in memory")
		kv = storage.NewMemoryStore()
	}

	var mailer services.ContactNotifier
	if n := services.NewSMTPNotifier(cfg.Email, cfg.Contact.Inbox); n != nil {
		mailer = n
	}

	storeLinks := cfg.AppStore.Links()
	defaultLang := cfg.Translations.DefaultLanguage
	supported := supportedLanguages(defaultLang, cfg.Translations.Supported)
	notifier := services.NewNotifier(translator)

	// 2. Initialize Handlers
	h := router.Handlers{
		HTML: handlers.NewHTMLHandler(translator, services.NewPageTranslator(logger.WithComponent("page"), storeLinks),
			defaultLang, cfg.Server.Dev, cfg.Server.DevTarget, cfg.Server.DistDir, log),
		Translation: handlers.NewTranslationHandler(translator, defaultLang, log),
		Contact:     handlers.NewContactHandler(services.NewContactService(contactRepo, mailer, logger.WithComponent("contact")), notifier, defaultLang),
		Consent:     handlers.NewConsentHandler(services.NewConsentService(kv, logger.WithComponent("consent")), notifier, defaultLang),
		AppStore:    handlers.NewAppStoreHandler(storeLinks, notifier, defaultLang, log),
	}

	if cfg.Server.Dev {
		log.Info("running in dev mode, proxying assets", "target", cfg.Server.DevTarget)
		proxy, err := handlers.DevProxyHandler(cfg.Server.DevTarget)
		if err != nil {
			return err
		}
		h.Fallback = proxy
	} else {
		log.Info("running in production mode, serving static files", "dir", cfg.Server.DistDir)
		h.Fallback = handlers.StaticHandler(cfg.Server.DistDir)
	}

	// 3. Setup Router
	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router.New(h, supported, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// supportedLanguages puts the default language first, the order the router
// and language detector expect.
func supportedLanguages(defaultLang string, configured []string) []string {
	out := []string{defaultLang}
	for _, lang := range configured {
		if lang != defaultLang {
			out = append(out, lang)
		}
	}
	return out
}
