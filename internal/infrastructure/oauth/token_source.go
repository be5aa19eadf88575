package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Google token endpoints, set directly so the IMAP side needs nothing
// beyond the core oauth2 package
const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// NewRefreshTokenSource builds a self-renewing token source from a
// stored refresh token. Access tokens are minted lazily and cached
// until expiry.
func NewRefreshTokenSource(ctx context.Context, clientID, clientSecret, refreshToken string) oauth2.TokenSource {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
		Scopes: []string{"https://mail.google.com/"},
	}
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}
