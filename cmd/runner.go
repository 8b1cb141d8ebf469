package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicadm/internal/repositories"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/desertthunder/musicadm/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	svc        *services.Services
	engine     *tasks.CatalogEngine
	journal    *repositories.NotificationJournal
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	errOutput  io.Writer
	notifier   services.Notifier
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Services is set the runner is considered connected and [Runner.Before] leaves it untouched.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Services   *services.Services
	Journal    *repositories.NotificationJournal
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	ErrOutput  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		journal:    opts.Journal,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		errOutput:  opts.ErrOutput,
	}
	r.notifier = r.sinks()
	if opts.Services != nil {
		r.setServices(opts.Services)
	}
	return r
}

// Before loads configuration, opens the notification journal and connects the API client.
//
// Config resolution: .env, then the TOML file (defaults when missing), then environment overrides, then --log-level.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.svc != nil {
		return ctx, nil
	}

	shared.LoadEnv()

	path := cmd.String("config")
	config, err := shared.LoadConfig(path)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", path)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}

	config.ApplyEnv()
	if level := cmd.String("log-level"); level != "" {
		config.Logging.Level = level
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}
	if err := shared.SetLogLevelString(r.logger, config.Logging.Level); err != nil {
		return ctx, err
	}

	r.config, r.configPath = config, path
	r.openJournal()
	r.notifier = r.sinks()
	r.setServices(r.newServices(r.notifier, r.logger))

	r.logger.Debug("connected", "base_url", config.API.BaseURL, "envelope", config.API.Envelope)
	return ctx, nil
}

// After closes the journal database.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		r.logger.Warn("failed to close database", "error", err)
	}
	r.db = nil
	return nil
}

// openJournal opens the sqlite notification journal. Failure only disables the journal.
func (r *Runner) openJournal() {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("notification journal unavailable", "path", r.config.Database.Path, "error", err)
		return
	}
	r.db = db
	r.journal = repositories.NewNotificationJournal(db, r.logger)
}

// sinks returns the console notifier fanned out to the journal when one is open.
func (r *Runner) sinks(extra ...services.Notifier) services.Notifier {
	multi := services.MultiNotifier{}
	if r.errOutput != nil {
		multi = append(multi, consoleNotifier{w: r.errOutput})
	}
	if r.journal != nil {
		multi = append(multi, r.journal)
	}
	return append(multi, extra...)
}

func (r *Runner) newServices(notifier services.Notifier, logger *log.Logger) *services.Services {
	client := services.NewClient(services.ClientOpts{
		BaseURL:    r.config.API.BaseURL,
		HTTPClient: r.httpClient,
		Logger:     shared.WithLogger(logger, "component", "api"),
		Notifier:   notifier,
		Envelope:   r.config.API.Envelope,
	})
	return services.New(client)
}

func (r *Runner) setServices(svc *services.Services) {
	r.svc = svc
	r.engine = tasks.FromServices(svc)
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, usersCommand, songsCommand, favoritesCommand, dashboardCommand, notificationsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// notify raises a notification through the console and journal sinks.
func (r *Runner) notify(ctx context.Context, level services.Level, format string, args ...any) {
	r.notifier.Notify(ctx, services.NewNotification(level, fmt.Sprintf(format, args...)))
}

func (r *Runner) ready() error {
	if r.svc == nil || r.engine == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// idArg parses the positional argument name as a positive resource ID.
func idArg(cmd *cli.Command, name string) (int64, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// idFlag reads a required positive ID flag.
func idFlag(cmd *cli.Command, name string) (int64, error) {
	id := cmd.Int(name)
	if id <= 0 {
		return 0, fmt.Errorf("%w: --%s must be a positive integer", shared.ErrInvalidFlag, name)
	}
	return int64(id), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

// writeResult writes data as JSON when --json is set, and calls plain otherwise.
func (r *Runner) writeResult(cmd *cli.Command, data any, plain func() error) error {
	if cmd.Bool("json") {
		return r.writeJSON(data, !cmd.Bool("compact"))
	}
	return plain()
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
