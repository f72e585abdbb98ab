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

	"moodstream/api"
	"moodstream/config"
	"moodstream/handlers"
	"moodstream/services/metadata"
	"moodstream/services/preview"
	"moodstream/services/search"
	"moodstream/services/suggest"
	"moodstream/services/weather"
	"moodstream/utils"

	"gopkg.in/natefinch/lumberjack.v2"
)

const sessionMaxAge = 2 * time.Hour

func main() {

	demoMode := flag.Bool("demo", false, "serve curated public domain titles instead of live providers")
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🚀 moodstream Backend Starting...")
	if *demoMode {
		fmt.Println("🧪 Demo mode enabled: serving curated public domain rows.")
	}

	// Determine config path (env or default)
	configPath := os.Getenv("MOODSTREAM_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			// Redirect standard log to both console and file
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if !*demoMode && settings.Providers.OMDBAPIKey == "" {
		fmt.Println("⚠️  No movie search API key configured; searches will fail until one is set in", configPath)
	}

	// Wire the service stack
	metaService := metadata.NewService(metadata.Options{
		OMDBAPIKey:  settings.Providers.OMDBAPIKey,
		OMDBBaseURL: settings.Providers.OMDBBaseURL,
		TMDBAPIKey:  settings.Providers.TMDBAPIKey,
		TMDBBaseURL: settings.Providers.TMDBBaseURL,
		Language:    settings.Providers.Language,
		CacheDir:    settings.Cache.Directory,
		CacheTTL:    settings.Cache.SearchTTLHours,
		DemoMode:    *demoMode,
	})
	weatherClient := weather.NewClient(settings.Weather.BaseURL, nil)
	suggestService := suggest.NewService(weatherClient, metaService, settings.Suggestions.FallbackQuery)

	searchSessions := search.NewSessions(metaService)
	previewSessions := preview.NewSessions(preview.Config{
		ShowDelay:  time.Duration(settings.Preview.ShowDelayMs) * time.Millisecond,
		CloseDelay: time.Duration(settings.Preview.CloseDelayMs) * time.Millisecond,
		PanelWidth: settings.Preview.PanelWidth,
		EdgeMargin: settings.Preview.EdgeMargin,
	}, metaService)

	// Evict idle client sessions in the background
	pruneTicker := time.NewTicker(15 * time.Minute)
	pruneDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-pruneTicker.C:
				if n := searchSessions.Prune(sessionMaxAge) + previewSessions.Prune(sessionMaxAge); n > 0 {
					log.Printf("[main] pruned %d idle sessions", n)
				}
			case <-pruneDone:
				return
			}
		}
	}()

	// Router and API
	r := utils.NewRouter()
	limiter := api.NewRateLimiter(20, 40)
	api.Register(r, api.Handlers{
		Suggestions: handlers.NewSuggestionsHandler(suggestService),
		Search:      handlers.NewSearchHandler(searchSessions),
		Preview:     handlers.NewPreviewHandler(previewSessions),
		Trailers:    handlers.NewTrailersHandler(metaService),
	}, limiter)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Setup graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	pruneTicker.Stop()
	close(pruneDone)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
