// Package cli implements the chorekit command tree. Commands resolve their
// adapters through App so tests can substitute fakes for remote services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/blogger"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/digitalocean"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/discord"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/exchangerate"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/gemini"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/googleauth"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/openai"
	sqliteadapter "github.com/ericfisherdev/chorekit/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/youtube"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/ytdlp"
	"github.com/ericfisherdev/chorekit/internal/config"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Translation backends selectable with --provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Credential service names OAuth tokens are cached under.
const (
	youtubeService = "youtube"
	bloggerService = "blogger"
)

// App carries configuration, standard streams and adapter factories shared
// by every command.
type App struct {
	Config *config.Config

	In  io.Reader
	Out io.Writer
	Err io.Writer

	LoadConfig         func() (*config.Config, error)
	NewCloud           func(ctx context.Context, token string) (driven.CloudClient, error)
	NewRates           func(url string) driven.ExchangeRateSource
	NewNotifier        func(url string) driven.Notifier
	NewTranslator      func(ctx context.Context, provider string) (driven.Translator, error)
	NewTranscriber     func() (driven.Transcriber, error)
	NewVideoSource     func() driven.VideoSource
	NewCaptionPlatform func(ctx context.Context, clientSecrets string) (driven.CaptionPlatform, error)
	NewBlogPublisher   func(ctx context.Context, clientSecrets string) (driven.BlogPublisher, error)

	db *sqliteadapter.DB
}

// NewApp returns an App wired to the real adapters and the process streams.
func NewApp() *App {
	a := &App{
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		LoadConfig: config.Load,
		NewCloud: func(ctx context.Context, token string) (driven.CloudClient, error) {
			if token == "" {
				return nil, errors.New("CHOREKIT_DIGITALOCEAN_TOKEN is required")
			}
			return digitalocean.NewClient(ctx, token), nil
		},
		NewRates: func(url string) driven.ExchangeRateSource {
			return exchangerate.NewClient(url)
		},
		NewNotifier: func(url string) driven.Notifier {
			return discord.NewWebhook(url)
		},
		NewVideoSource: func() driven.VideoSource {
			return ytdlp.NewSource(slog.Default())
		},
	}
	a.NewTranslator = a.translator
	a.NewTranscriber = a.transcriber
	a.NewCaptionPlatform = a.captionPlatform
	a.NewBlogPublisher = a.blogPublisher
	return a
}

// Close releases the history database if a command opened it.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) translator(ctx context.Context, provider string) (driven.Translator, error) {
	switch provider {
	case "", ProviderOpenAI:
		if a.Config.OpenAIAPIKey == "" {
			return nil, errors.New("CHOREKIT_OPENAI_API_KEY is required")
		}
		return openai.NewClient(a.Config.OpenAIAPIKey), nil
	case ProviderGemini:
		return gemini.NewClient(ctx, a.Config.GeminiAPIKey)
	default:
		return nil, fmt.Errorf("unknown translation provider %q (want %s or %s)", provider, ProviderOpenAI, ProviderGemini)
	}
}

func (a *App) transcriber() (driven.Transcriber, error) {
	if a.Config.OpenAIAPIKey == "" {
		return nil, errors.New("CHOREKIT_OPENAI_API_KEY is required")
	}
	return openai.NewClient(a.Config.OpenAIAPIKey), nil
}

func (a *App) captionPlatform(ctx context.Context, clientSecrets string) (driven.CaptionPlatform, error) {
	auth, err := a.authenticator(ctx, youtubeService, clientSecrets, youtube.Scope)
	if err != nil {
		return nil, err
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return youtube.NewClient(ctx, httpClient)
}

func (a *App) blogPublisher(ctx context.Context, clientSecrets string) (driven.BlogPublisher, error) {
	auth, err := a.authenticator(ctx, bloggerService, clientSecrets, blogger.Scope)
	if err != nil {
		return nil, err
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return blogger.NewClient(ctx, httpClient)
}

func (a *App) authenticator(ctx context.Context, service, clientSecrets string, scopes ...string) (*googleauth.Authenticator, error) {
	store, err := a.credentialStore(ctx)
	if err != nil {
		return nil, err
	}
	auth := googleauth.NewAuthenticator(store, service, clientSecrets, scopes...)
	auth.OnAuthURL = func(url string) {
		fmt.Fprintf(a.Out, "Otwórz ten adres w przeglądarce, aby autoryzować dostęp:\n%s\n", url)
	}
	return auth, nil
}

// credentialStore keeps OAuth tokens encrypted in SQLite when both a
// database and a secret key are configured, and in token files otherwise.
func (a *App) credentialStore(ctx context.Context) (driven.CredentialStore, error) {
	if a.Config.HasHistory() && a.Config.SecretKey != nil {
		db, err := a.history(ctx)
		if err != nil {
			return nil, err
		}
		return sqliteadapter.NewCredentialRepo(db, a.Config.SecretKey), nil
	}
	return filesystem.NewTokenFileStore(a.Config.TokenDir), nil
}

// history opens the SQLite database on first use.
func (a *App) history(ctx context.Context) (*sqliteadapter.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if !a.Config.HasHistory() {
		return nil, errors.New("history is disabled: set CHOREKIT_DB_PATH")
	}
	db, err := sqliteadapter.Open(ctx, a.Config.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("history database opened", "path", a.Config.DBPath)
	a.db = db
	return db, nil
}

// auditStore returns nil when history is disabled.
func (a *App) auditStore(ctx context.Context) (driven.AuditStore, error) {
	if !a.Config.HasHistory() {
		return nil, nil
	}
	db, err := a.history(ctx)
	if err != nil {
		return nil, err
	}
	return sqliteadapter.NewAuditRepo(db), nil
}

// balanceStore returns nil when history is disabled.
func (a *App) balanceStore(ctx context.Context) (driven.BalanceStore, error) {
	if !a.Config.HasHistory() {
		return nil, nil
	}
	db, err := a.history(ctx)
	if err != nil {
		return nil, err
	}
	return sqliteadapter.NewBalanceRepo(db), nil
}
