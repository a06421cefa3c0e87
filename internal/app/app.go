package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"outlog/internal/compactors"
	"outlog/internal/events"
	internalhttp "outlog/internal/http"
	"outlog/internal/models"
	"outlog/internal/patterns"
	"outlog/internal/shared/configs"
	"outlog/internal/shared/filestorages"
	"outlog/internal/shared/loggers"
	"outlog/internal/stores"
	"outlog/internal/streams"
	"outlog/internal/watchers"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	fileStorage       filestorages.FileStorage
	catalogue         *patterns.Catalogue
	compactionService compactors.CompactionService
}

// New creates and initializes a new App instance. Logs are written to logOut.
func New(config *configs.Config, logOut io.Writer) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "outlog").
		Logger()

	// Initialize pattern catalogue
	declared := config.CataloguePatterns()
	if declared == nil {
		declared = patterns.Default(config.Input.Marker, config.Input.ProjectRoot)
	}
	catalogue, err := patterns.New(config.Input.Marker, config.Input.ProjectRoot, declared)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pattern catalogue: %w", err)
	}

	// Initialize file storage over the input dir
	fileStorage, err := filestorages.NewFileStorage(config.Input.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize compaction service
	compactor := compactors.NewCompactor(catalogue, config.Input.LinePrefix(), config.Compaction.MaxLineBytes)
	outlogStore := stores.NewOutlogStore(fileStorage)
	reportStore := stores.NewRunReportStore(fileStorage, config.Output.ReportDir)
	compactionService := compactors.NewCompactionService(compactor, outlogStore, reportStore, compactors.Options{
		Glob:      config.Input.Glob,
		OutputDir: config.Output.Dir,
		Workers:   config.Compaction.Workers,
	})

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(compactionService, internalhttp.RouterOptions{
		Marker:       config.Input.Marker,
		MaxBodyBytes: int64(config.Server.MaxBodyBytes),
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:            config,
		appLogger:         appLogger,
		server:            server,
		fileStorage:       fileStorage,
		catalogue:         catalogue,
		compactionService: compactionService,
	}, nil
}

// Logger returns the application logger.
func (app *App) Logger() loggers.Logger {
	return app.appLogger
}

// Catalogue returns the loop patterns in scan order.
func (app *App) Catalogue() *patterns.Catalogue {
	return app.catalogue
}

// Compact runs one compaction over the input dir.
func (app *App) Compact(ctx context.Context, req compactors.CompactDirectoryRequest) (*models.RunReport, error) {
	ctx = app.appLogger.With().Str(loggers.FieldComponent, "compact").Logger().WithContext(ctx)
	return app.compactionService.CompactDirectory(ctx, req)
}

// Watch compacts outlogs again whenever they change, until ctx is done.
// onCompacted may be nil.
func (app *App) Watch(ctx context.Context, onCompacted streams.CompactedFunc) error {
	watchLogger := app.appLogger.With().Str(loggers.FieldComponent, "watch").Logger()
	ctx = watchLogger.WithContext(ctx)

	queue := streams.NewPartitionedQueue[events.CompactionRequestedEvent](app.config.Watch.Partitions, app.config.Watch.BufferSize)
	producer := streams.NewCompactionProducer(queue)

	watcher, err := watchers.NewWatcher(app.fileStorage.Root(), watchers.Options{
		Glob:      app.config.Input.Glob,
		OutputDir: app.config.Output.Dir,
		Debounce:  time.Duration(app.config.Watch.DebounceMillis) * time.Millisecond,
	}, producer)
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}

	consumerLogger := watchLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	consumer := streams.NewCompactionConsumer(queue, app.compactionService, onCompacted, consumerLogger)

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	consumer.Start(consumerCtx)

	runErr := watcher.Run(ctx)

	// the watcher has queued its pending changes and no longer publishes;
	// workers finish the backlog before Stop returns
	queue.Close()
	consumer.Stop()
	cancelConsumer()
	watchLogger.Info().Msg("watch stopped")

	return runErr
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting outlog service on port %d (log_level=%s, input_dir=%s, patterns=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.fileStorage.Root(),
			app.catalogue.Len())

	err := app.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}
