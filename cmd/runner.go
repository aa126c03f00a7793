package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/auth"
	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	tokens *auth.Manager
	store  *store.Store
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Tokens *auth.Manager
	Store  *store.Store
	Logger *log.Logger
	Output io.Writer
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
	if opts.Tokens == nil {
		broker := auth.NewBrokerClient(opts.Config.Broker, nil, opts.Logger)
		credentials := auth.NewFileStore(opts.Config.Storage.CredentialsPath)
		opts.Tokens = auth.NewManager(opts.Config.Account, broker, credentials, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.New(opts.Config.Storage.DatabasePath, opts.Logger)
	}

	return &Runner{
		config: opts.Config,
		tokens: opts.Tokens,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// reload replaces the runner's configuration from the given path and rebuilds
// the dependencies derived from it.
func (r *Runner) reload(path string) error {
	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}

	r.config = config
	broker := auth.NewBrokerClient(config.Broker, nil, r.logger)
	credentials := auth.NewFileStore(config.Storage.CredentialsPath)
	r.tokens = auth.NewManager(config.Account, broker, credentials, r.logger)
	r.store = store.New(config.Storage.DatabasePath, r.logger)
	return nil
}

// reloadIfSet reloads configuration from the command's --config flag when the
// file exists. A missing file is not an error; the runner keeps its current
// configuration.
func (r *Runner) reloadIfSet(cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return r.reload(path)
}

// SetLogger swaps the runner's logger, used when a TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, authCommand, dislikeCommand, undislikeCommand, statusCommand, setupCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
