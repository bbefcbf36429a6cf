package oauth

import (
	"context"
	"net/http"

	"launchboard-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// APIAuth decides how outbound requests to the launch API are authenticated.
// The public API needs nothing; deployments behind a gateway can supply either
// a static bearer token or client credentials.
type APIAuth struct {
	staticToken  string
	clientID     string
	clientSecret string
	tokenURL     string
	logger       logger.Logger
}

// NewAPIAuth creates a new API auth handler
func NewAPIAuth(staticToken, clientID, clientSecret, tokenURL string, logger logger.Logger) *APIAuth {
	return &APIAuth{
		staticToken:  staticToken,
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		logger:       logger,
	}
}

// GetTokenSource returns the token source to use, or nil when the API is called anonymously.
// Client credentials win over a static token when both are configured.
func (a *APIAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	switch {
	case a.clientID != "" && a.clientSecret != "" && a.tokenURL != "":
		a.logger.Info("Using client credentials for launch API", "tokenURL", a.tokenURL)
		cfg := &clientcredentials.Config{
			ClientID:     a.clientID,
			ClientSecret: a.clientSecret,
			TokenURL:     a.tokenURL,
		}
		return cfg.TokenSource(ctx)
	case a.staticToken != "":
		a.logger.Info("Using static bearer token for launch API")
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.staticToken, TokenType: "Bearer"})
	default:
		return nil
	}
}

// WrapClient returns client with its transport authenticating through ts.
// A nil ts returns client unchanged.
func WrapClient(client *http.Client, ts oauth2.TokenSource) *http.Client {
	if ts == nil {
		return client
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = &oauth2.Transport{Source: ts, Base: base}
	return &wrapped
}
