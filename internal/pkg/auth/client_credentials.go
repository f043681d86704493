package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// defaultExpiresIn applies when the token endpoint omits expires_in.
const defaultExpiresIn = 30 * time.Minute

// ClientCredentialsAcquirer obtains tokens with the OAuth2 client-credentials grant.
type ClientCredentialsAcquirer struct {
	config     clientcredentials.Config
	httpClient *http.Client
	now        func() time.Time
}

func NewClientCredentialsAcquirer(tokenURL, clientID, clientSecret string,
	timeout time.Duration,
) *ClientCredentialsAcquirer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ClientCredentialsAcquirer{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (a *ClientCredentialsAcquirer) Acquire(ctx context.Context) (AcquiredToken, error) {
	if a.config.ClientID == "" || a.config.ClientSecret == "" {
		return AcquiredToken{}, errors.New("client credentials are not configured")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	token, err := a.config.Token(ctx)
	if err != nil {
		return AcquiredToken{}, fmt.Errorf("client credentials grant: %w", err)
	}

	expiresIn := defaultExpiresIn
	if !token.Expiry.IsZero() {
		expiresIn = token.Expiry.Sub(a.now())
	}

	return AcquiredToken{
		Value:     token.AccessToken,
		ExpiresIn: expiresIn,
	}, nil
}
