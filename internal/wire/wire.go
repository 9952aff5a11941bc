// Package wire provides dependency injection for the planner application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/planner/internal/adapters/cli"
	"github.com/example/planner/internal/adapters/jsonfile"
	"github.com/example/planner/internal/adapters/sqlite"
	"github.com/example/planner/internal/app"
	"github.com/example/planner/internal/config"
	"github.com/example/planner/internal/core/schedule"
	"github.com/example/planner/internal/db"
	"github.com/example/planner/internal/ports/primary"
	"github.com/example/planner/internal/ports/secondary"
)

// Options are command-line overrides applied on top of the config file.
type Options struct {
	Home    string // planner home; empty means config.Home()
	DataDir string
	Backend string
	Verbose bool
}

var (
	options        Options
	home           string
	cfg            *config.Config
	logger         *slog.Logger
	database       *sql.DB
	projectService primary.ProjectService
	taskService    primary.TaskService
	doctorService  primary.DoctorService
	initErr        error
	once           sync.Once
)

// Configure sets the overrides used by Init. It must be called before the
// first service is requested.
func Configure(opts Options) {
	options = opts
}

// Init builds all services. It is safe to call more than once; the result
// of the first call is returned.
func Init() error {
	once.Do(initServices)
	return initErr
}

// Config returns the effective configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// DoctorService returns the singleton DoctorService instance.
func DoctorService() primary.DoctorService {
	once.Do(initServices)
	return doctorService
}

// Home returns the resolved planner home directory.
func Home() string {
	once.Do(initServices)
	return home
}

// Close releases the database connection, if one was opened.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// Reset closes open resources and forgets all singletons so the next call
// initializes again. Used by tests that run several command lines.
func Reset() {
	_ = Close()
	options = Options{}
	home, cfg, logger = "", nil, nil
	projectService, taskService, doctorService = nil, nil, nil
	initErr = nil
	once = sync.Once{}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	home = options.Home
	if home == "" {
		h, err := config.Home()
		if err != nil {
			initErr = err
			return
		}
		home = h
	}

	loaded, err := config.LoadConfig(home)
	if err != nil {
		initErr = err
		return
	}
	if options.DataDir != "" {
		loaded.DataDir = options.DataDir
	}
	if options.Backend != "" {
		loaded.Backend = options.Backend
	}
	if err := loaded.Validate(); err != nil {
		initErr = err
		return
	}
	cfg = loaded

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	if options.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Create repository adapters (secondary ports) for the configured backend
	var (
		taskRepo    secondary.TaskRepository
		catalogRepo secondary.CatalogRepository
		checker     secondary.StorageChecker
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err = db.Open(db.Path(cfg.DataDir))
		if err != nil {
			initErr = fmt.Errorf("failed to initialize database: %w", err)
			return
		}
		taskRepo = sqlite.NewTaskRepository(database)
		catalogRepo = sqlite.NewCatalogRepository(database)
		checker = sqlite.NewChecker(database)
	default:
		taskRepo = jsonfile.NewTaskRepository(cfg.DataDir)
		catalogRepo = jsonfile.NewCatalogRepository(cfg.DataDir)
		checker = jsonfile.NewChecker(cfg.DataDir)
	}
	logger.Debug("storage ready", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	policy, _ := schedule.ParseDuplicatePolicy(cfg.DuplicateNames)

	// Create services (primary ports implementation)
	projects := app.NewProjectService(taskRepo, catalogRepo, app.ProjectServiceOptions{
		DuplicatePolicy: policy,
		AbortOnCorrupt:  cfg.OnCorrupt == config.OnCorruptAbort,
		Logger:          logger,
	})
	projectService = projects
	taskService = app.NewTaskService(projects, cfg.DeadlineWindowDays, logger)
	doctorService = app.NewDoctorService(taskRepo, catalogRepo, checker, logger)
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
func ProjectAdapterWithOutput(out io.Writer) *cliadapter.ProjectAdapter {
	return cliadapter.NewProjectAdapter(ProjectService(), out)
}

// TaskAdapterWithOutput returns a new TaskAdapter writing to the given output.
func TaskAdapterWithOutput(out io.Writer) *cliadapter.TaskAdapter {
	return cliadapter.NewTaskAdapter(TaskService(), out)
}

// DoctorAdapterWithOutput returns a new DoctorAdapter writing to the given output.
func DoctorAdapterWithOutput(out io.Writer) *cliadapter.DoctorAdapter {
	return cliadapter.NewDoctorAdapter(DoctorService(), out)
}
