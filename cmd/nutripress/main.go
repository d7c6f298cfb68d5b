// Package main is the entry point for the NutriPress content server.
// It loads configuration, connects to Postgres and Redis (and optionally
// the external storefront database), wires the generation pipeline, and
// starts the HTTP API with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutripress/internal/ai"
	"nutripress/internal/autoblog"
	"nutripress/internal/cache"
	"nutripress/internal/config"
	"nutripress/internal/database"
	"nutripress/internal/generator"
	"nutripress/internal/handlers"
	"nutripress/internal/hyperlink"
	"nutripress/internal/quality"
	"nutripress/internal/router"
	"nutripress/internal/session"
	"nutripress/internal/store"
	"nutripress/internal/storefront"
	syncsvc "nutripress/internal/sync"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Redis backs sessions and the linkable catalog cache.
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	productStore := store.NewProductStore(db)
	categoryStore := store.NewCategoryStore(db)
	blogStore := store.NewBlogStore(db)
	titleStore := store.NewTitleStore(db)
	hyperlinkStore := store.NewHyperlinkStore(db)
	productBlogStore := store.NewProductBlogStore(db)
	syncLogStore := store.NewSyncLogStore(db)
	providerConfigStore := store.NewProviderConfigStore(db)

	// Generation pipeline.
	factory := ai.NewFactory()
	resolver := generator.NewStoreResolver(providerConfigStore, factory)
	linkableCache := cache.NewLinkableCache(redisClient, cache.DefaultLinkableTTL)
	hyperlinkService := hyperlink.NewService(productStore, categoryStore, linkableCache)
	validator := quality.NewValidator(blogStore)

	titleGen := generator.NewTitleGenerator(productStore, titleStore, resolver)
	articleGen := generator.NewArticleGenerator(
		productStore, titleStore, blogStore, hyperlinkStore, productBlogStore,
		hyperlinkService, validator, resolver,
	)
	autoBlogService := autoblog.NewService(titleGen, articleGen, titleStore, productStore, autoblog.StatStores{
		Products:     productStore,
		Titles:       titleStore,
		Blogs:        blogStore,
		ProductBlogs: productBlogStore,
	})

	// Storefront sync — optional; the rest of the app works without it.
	var syncService *syncsvc.Service
	if cfg.StorefrontDSN != "" {
		storefrontClient, err := storefront.Connect(cfg.StorefrontDSN)
		if err != nil {
			slog.Error("failed to connect to storefront database", "error", err)
			os.Exit(1)
		}
		defer storefrontClient.Close()

		syncService = syncsvc.NewService(
			storefrontClient, db, productStore, syncLogStore,
			hyperlinkService, cfg.SyncBatchSize,
		)
		slog.Info("storefront sync enabled", "batch_size", cfg.SyncBatchSize)
	} else {
		slog.Warn("storefront sync not configured — product sync endpoints disabled")
	}

	r := router.New(sessionStore, router.Handlers{
		Auth:       handlers.NewAuth(sessionStore, userStore),
		Blogs:      handlers.NewBlogs(blogStore, hyperlinkStore),
		Categories: handlers.NewCategories(categoryStore),
		AutoBlog:   handlers.NewAutoBlog(autoBlogService, titleGen),
		Products:   handlers.NewProducts(productStore, syncLogStore, syncService),
		Providers:  handlers.NewProviders(providerConfigStore, factory),
	})

	// WriteTimeout must accommodate generation endpoints that wait on LLM
	// responses — batch runs against local inference can take minutes.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
