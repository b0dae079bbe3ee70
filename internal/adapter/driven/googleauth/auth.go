// Package googleauth authorizes Google API clients with the installed-app
// OAuth2 flow, caching tokens in a CredentialStore.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// TokenKey is the credential key tokens are stored under for each service.
const TokenKey = "token"

const callbackTimeout = 5 * time.Minute

// Authenticator produces OAuth2 HTTP clients for one Google service.
type Authenticator struct {
	store         driven.CredentialStore
	service       string
	clientSecrets string
	scopes        []string

	// OnAuthURL is called with the consent URL when the user must authorize.
	OnAuthURL func(url string)
	// ListenAddr is the loopback address the redirect listener binds to.
	ListenAddr string
}

// NewAuthenticator creates an Authenticator for service (used as the
// credential store namespace) reading client secrets from clientSecrets.
func NewAuthenticator(store driven.CredentialStore, service, clientSecrets string, scopes ...string) *Authenticator {
	return &Authenticator{
		store:         store,
		service:       service,
		clientSecrets: clientSecrets,
		scopes:        scopes,
		OnAuthURL: func(url string) {
			fmt.Fprintf(os.Stderr, "Open this URL in your browser to authorize %s:\n%s\n", service, url)
		},
		ListenAddr: "127.0.0.1:0",
	}
}

// HTTPClient returns a client that attaches a valid access token to every
// request. A cached token is reused when valid, refreshed when expired, and
// the browser consent flow runs only when neither works.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	tok, err := a.Token(ctx, cfg)
	if err != nil {
		return nil, err
	}

	src := &savingTokenSource{
		ctx:     ctx,
		base:    cfg.TokenSource(ctx, tok),
		store:   a.store,
		service: a.service,
		last:    tok,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// Token returns a usable token for cfg, persisting any new or refreshed token.
func (a *Authenticator) Token(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	cached, err := a.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	if cached != nil && cached.Valid() {
		slog.Debug("using cached oauth token", "service", a.service)
		return cached, nil
	}

	if cached != nil && cached.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, cached).Token()
		if err == nil {
			slog.Info("refreshed oauth token", "service", a.service)
			return refreshed, a.saveToken(ctx, refreshed)
		}
		slog.Warn("oauth token refresh failed, starting consent flow", "service", a.service, "error", err)
	}

	tok, err := a.consent(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return tok, a.saveToken(ctx, tok)
}

func (a *Authenticator) config() (*oauth2.Config, error) {
	data, err := os.ReadFile(a.clientSecrets)
	if err != nil {
		return nil, fmt.Errorf("read client secrets %s: %w", a.clientSecrets, err)
	}
	cfg, err := google.ConfigFromJSON(data, a.scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets %s: %w", a.clientSecrets, err)
	}
	return cfg, nil
}

// consent runs the loopback redirect flow: it listens on ListenAddr, hands
// the consent URL to OnAuthURL and exchanges the returned code.
func (a *Authenticator) consent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", a.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen for oauth redirect: %w", err)
	}
	defer listener.Close()

	flowCfg := *cfg
	flowCfg.RedirectURL = "http://" + listener.Addr().String() + "/"

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			var cb callback
			switch {
			case q.Get("error") != "":
				cb.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
			case q.Get("state") != state:
				cb.err = errors.New("authorization state mismatch")
			case q.Get("code") == "":
				cb.err = errors.New("authorization response has no code")
			default:
				cb.code = q.Get("code")
			}

			if cb.err != nil {
				http.Error(w, cb.err.Error(), http.StatusBadRequest)
			} else {
				fmt.Fprintln(w, "Authorization complete. You can close this window.")
			}

			select {
			case results <- cb:
			default:
			}
		}),
	}
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	a.OnAuthURL(flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)))

	timer := time.NewTimer(callbackTimeout)
	defer timer.Stop()

	var cb callback
	select {
	case cb = <-results:
	case <-timer.C:
		return nil, errors.New("timed out waiting for oauth redirect")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if cb.err != nil {
		return nil, cb.err
	}

	tok, err := flowCfg.Exchange(ctx, cb.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	slog.Info("obtained oauth token", "service", a.service)
	return tok, nil
}

func (a *Authenticator) loadToken(ctx context.Context) (*oauth2.Token, error) {
	raw, err := a.store.Get(ctx, a.service, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load %s token: %w", a.service, err)
	}
	if raw == "" {
		return nil, nil
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		slog.Warn("discarding unreadable cached token", "service", a.service, "error", err)
		if err := a.store.Delete(ctx, a.service, TokenKey); err != nil {
			return nil, fmt.Errorf("discard %s token: %w", a.service, err)
		}
		return nil, nil
	}
	return &tok, nil
}

func (a *Authenticator) saveToken(ctx context.Context, tok *oauth2.Token) error {
	return storeToken(ctx, a.store, a.service, tok)
}

func storeToken(ctx context.Context, store driven.CredentialStore, service string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal %s token: %w", service, err)
	}
	if err := store.Set(ctx, service, TokenKey, string(data)); err != nil {
		return fmt.Errorf("save %s token: %w", service, err)
	}
	return nil
}

// savingTokenSource persists every token the wrapped source returns that
// differs from the last one seen. Writes use ctx, the context the client was
// created with.
type savingTokenSource struct {
	ctx     context.Context
	base    oauth2.TokenSource
	store   driven.CredentialStore
	service string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || s.last.AccessToken != tok.AccessToken {
		if err := storeToken(s.ctx, s.store, s.service, tok); err != nil {
			slog.Warn("could not persist refreshed token", "service", s.service, "error", err)
		}
		s.last = tok
	}
	return tok, nil
}
