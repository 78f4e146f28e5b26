package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"vortex/api"
	"vortex/config"
	"vortex/handlers"
	"vortex/internal/store"
	"vortex/services/catalog"
	"vortex/services/listing"
	"vortex/services/metadata"
	"vortex/services/users"
	"vortex/services/watchlist"
	"vortex/utils"
)

func main() {
	demoMode := flag.Bool("demo", false, "serve the bundled sample catalog instead of live feeds")
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🚀 Vortex Backend Starting...")
	if *demoMode {
		fmt.Println("🧪 Demo mode enabled: serving the bundled sample catalog.")
	}

	configPath := os.Getenv("VORTEX_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// File logging with rotation, mirrored to the console.
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	st, err := store.NewFileStore(afero.NewOsFs(), settings.Cache.Directory)
	if err != nil {
		log.Fatalf("failed to initialise storage: %v", err)
	}

	listingClient, err := listing.NewClient(settings.Listing.BaseURL, nil)
	if err != nil {
		log.Fatalf("failed to initialise listing client: %v", err)
	}

	metadataService := metadata.NewService(settings.Metadata.TMDBAPIKey, settings.Metadata.Language, st, nil)
	if !metadataService.Enabled() {
		log.Printf("warning: no TMDB API key configured; poster and country enrichment disabled")
	}

	catalogService := catalog.NewService(listingClient, metadataService, st, catalog.Options{
		PageSize:           settings.Catalog.PageSize,
		HydrateConcurrency: settings.Catalog.HydrateConcurrency,
		TrendingMaxPages:   settings.Catalog.TrendingMaxPages,
		SearchPagesPerKind: settings.Catalog.SearchPagesPerKind,
		DemoMode:           *demoMode,
	})

	userService, err := users.NewService(st)
	if err != nil {
		log.Fatalf("failed to initialise users: %v", err)
	}

	watchlistService, err := watchlist.NewService(st)
	if err != nil {
		log.Fatalf("failed to initialise watchlist: %v", err)
	}

	settingsHandler := handlers.NewSettingsHandler(cfgManager, *demoMode)
	settingsHandler.SetMetadataService(metadataService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	usersHandler := handlers.NewUsersHandler(userService)
	usersHandler.SetWatchlist(watchlistService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService, userService, *demoMode)

	r := utils.NewRouter()
	api.Register(r, settingsHandler, catalogHandler, usersHandler, watchlistHandler)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
