package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/jacai-cli/internal/adapters/clipboard/osc52"
	"github.com/bnema/jacai-cli/internal/adapters/clipboard/scratch"
	"github.com/bnema/jacai-cli/internal/adapters/clipboard/system"
	"github.com/bnema/jacai-cli/internal/adapters/generator/httpapi"
	openaigen "github.com/bnema/jacai-cli/internal/adapters/generator/openai"
	"github.com/bnema/jacai-cli/internal/adapters/generator/template"
	postadapter "github.com/bnema/jacai-cli/internal/adapters/render/post"
	tomlrepo "github.com/bnema/jacai-cli/internal/adapters/repo/toml"
	secretchain "github.com/bnema/jacai-cli/internal/adapters/secrets/chain"
	"github.com/bnema/jacai-cli/internal/application"
	"github.com/bnema/jacai-cli/internal/config"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/logging"
	"github.com/bnema/jacai-cli/internal/ports"
	"go.uber.org/zap"
)

type app struct {
	config       *config.Config
	logger       *zap.Logger
	closeLogger  func() error
	generator    ports.Generator
	service      *httpapi.Client
	history      *application.HistoryService
	credentials  *application.CredentialService
	clipboard    ports.Clipboard
	surfaces     ports.SurfaceProvider
	legacy       ports.LegacyCopier
	postRenderer func(domain.GeneratedPost, postadapter.RenderOptions) (string, error)
}

type wireOptions struct {
	ConfigPath string
	Provider   string
	EnvFile    string
	// Interactive commands own the terminal, so logs only go to log.file.
	Interactive bool
	LogWriter   io.Writer
	// TerminalWriter receives OSC 52 sequences from the copy fallback.
	TerminalWriter io.Writer
	// SkipGenerator leaves the provider unwired for commands that never generate.
	SkipGenerator bool
}

func wireApp(ctx context.Context, opts wireOptions) (*app, error) {
	cfg, err := config.Load(config.Options{
		ConfigPath: opts.ConfigPath,
		EnvFile:    opts.EnvFile,
		Provider:   opts.Provider,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logWriter := opts.LogWriter
	if opts.Interactive {
		logWriter = nil
	}
	logger, closeLogger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Writer: logWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	credentials, err := wireCredentials(cfg)
	if err != nil {
		_ = closeLogger()
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Service.Timeout}
	service := &httpapi.Client{
		BaseURL:    cfg.Service.URL,
		APIKey:     cfg.Service.APIKey,
		HTTPClient: httpClient,
	}

	var generator ports.Generator
	if !opts.SkipGenerator {
		generator, err = wireGenerator(ctx, cfg, credentials, service, httpClient)
		if err != nil {
			_ = closeLogger()
			return nil, err
		}
	}

	repo, err := tomlrepo.NewRepository(cfg.Viper())
	if err != nil {
		_ = closeLogger()
		return nil, fmt.Errorf("wire history repository: %w", err)
	}

	a := &app{
		config:       cfg,
		logger:       logger,
		closeLogger:  closeLogger,
		generator:    generator,
		service:      service,
		history:      application.NewHistoryService(repo, ports.SystemClock{}),
		credentials:  credentials,
		surfaces:     scratch.NewProvider(cfg.Clipboard.ScratchDir),
		postRenderer: postadapter.Render,
	}
	if cfg.Clipboard.System {
		a.clipboard = system.New()
	}
	if cfg.Clipboard.OSC52 && opts.TerminalWriter != nil {
		a.legacy = osc52.NewFromEnv(opts.TerminalWriter)
	}

	logger.Debug("app wired",
		zap.String("provider", cfg.Provider),
		zap.String("history", repo.Path()),
		zap.Bool("system_clipboard", cfg.Clipboard.System),
		zap.Bool("osc52", a.legacy != nil),
	)

	return a, nil
}

func wireCredentials(cfg *config.Config) (*application.CredentialService, error) {
	dir, err := cfg.SecretsDir()
	if err != nil {
		return nil, err
	}

	store, err := secretchain.ForBackend(cfg.Secrets.Backend, dir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	return application.NewCredentialService(store), nil
}

// wireGenerator only reads the stored key of the provider in use.
func wireGenerator(ctx context.Context, cfg *config.Config, credentials *application.CredentialService, service *httpapi.Client, httpClient *http.Client) (ports.Generator, error) {
	switch cfg.Provider {
	case config.ProviderHTTP:
		apiKey, err := credentials.Resolve(ctx, application.CredentialHTTP, cfg.Service.APIKey)
		if err != nil {
			return nil, err
		}
		service.APIKey = apiKey
		return service, nil
	case config.ProviderOpenAI:
		apiKey, err := credentials.Resolve(ctx, application.CredentialOpenAI, cfg.OpenAI.APIKey)
		if err != nil {
			return nil, err
		}
		generator, err := openaigen.NewGenerator(openaigen.Settings{
			APIKey:     apiKey,
			Model:      cfg.OpenAI.Model,
			BaseURL:    cfg.OpenAI.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("wire openai generator: %w", err)
		}
		return generator, nil
	case config.ProviderTemplate:
		return template.Generator{}, nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

// newController starts a fresh session; each command invocation owns one.
func (a *app) newController() *application.Controller {
	controller := application.NewController(application.NewSession(), a.generator, a.logger)
	controller.OnChange(func(state application.State) {
		a.logger.Debug("session state changed",
			zap.String("status", state.StatusMessage),
			zap.Bool("in_flight", state.RequestInFlight),
			zap.Bool("has_result", state.LastResult != nil),
		)
	})
	return controller
}

func (a *app) newCopier(source application.ResultSource) *application.Copier {
	return application.NewCopier(source, a.clipboard, a.surfaces, a.legacy, a.logger)
}

func (a *app) close() error {
	if a == nil || a.closeLogger == nil {
		return nil
	}
	return a.closeLogger()
}

// historyController records every successful generation in the history.
type historyController struct {
	*application.Controller
	history *application.HistoryService
	logger  *zap.Logger
}

func (c historyController) Submit(ctx context.Context, request domain.GenerationRequest) application.Outcome {
	outcome := c.Controller.Submit(ctx, request)
	c.record(ctx, outcome)
	return outcome
}

func (c historyController) Regenerate(ctx context.Context) application.Outcome {
	outcome := c.Controller.Regenerate(ctx)
	c.record(ctx, outcome)
	return outcome
}

func (c historyController) record(ctx context.Context, outcome application.Outcome) {
	if !outcome.Succeeded() {
		return
	}

	entry, err := c.history.Record(ctx, outcome.Request, outcome.Post)
	if err != nil {
		c.logger.Warn("record history entry", zap.Error(err))
		return
	}
	c.logger.Debug("history entry recorded", zap.String("id", string(entry.ID)))
}
