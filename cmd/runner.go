package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"mixtape/internal/services"
	"mixtape/internal/shared"
	"mixtape/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	engine     *tasks.Engine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Catalog and Text override the default service factories, used by tests to
// substitute stubs for the real Spotify and OpenAI clients.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    tasks.CatalogFactory
	Text       tasks.TextFactory
	Cache      tasks.TrackCacher
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Catalog == nil {
		opts.Catalog = catalogFactory(opts.Config)
	}
	if opts.Text == nil {
		opts.Text = textFactory(opts.Config)
	}

	return &Runner{
		config:     opts.Config,
		engine:     tasks.NewEngine(opts.Catalog, opts.Text, opts.Cache, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// catalogFactory builds authenticated Spotify sessions for pipeline runs.
//
// Cached OAuth tokens from the config are used when the bundle matches the
// configured client; callers without a cached token are told to run the auth
// flow first.
func catalogFactory(config *shared.Config) tasks.CatalogFactory {
	return func(ctx context.Context, creds shared.Credentials) (services.CatalogService, error) {
		svc, err := services.NewSpotifyService(creds.SpotifyMap())
		if err != nil {
			return nil, err
		}

		auth := map[string]string{}
		if config.Credentials.Spotify.AccessToken != "" {
			auth["access_token"] = config.Credentials.Spotify.AccessToken
			auth["refresh_token"] = config.Credentials.Spotify.RefreshToken
		}

		if err := svc.Authenticate(ctx, auth); err != nil {
			return nil, fmt.Errorf("%w: run 'mixtape auth' to authorize Spotify access", err)
		}
		return svc, nil
	}
}

// textFactory builds OpenAI clients using the configured model and endpoint.
func textFactory(config *shared.Config) tasks.TextFactory {
	return func(creds shared.Credentials) (services.TextService, error) {
		return services.NewOpenAIService(creds.OpenAIKey, services.OpenAIOpts{
			BaseURL: config.Credentials.OpenAI.BaseURL,
			Model:   config.Credentials.OpenAI.Model,
		})
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		generateCommand, serveCommand, watchCommand, authCommand, cacheCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, used when a command redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
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
