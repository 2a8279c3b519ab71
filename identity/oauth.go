package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foxyweb/service"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"
)

// OAuthConfig holds the Discord application credentials
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIEndpoint  string // e.g. https://discord.com/api/v10
}

// Token is the access token granted for an authorization code
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Expiry       time.Time
}

// OAuthClient performs the authorization code flow against Discord
type OAuthClient struct {
	config     *oauth2.Config
	httpClient *http.Client

	// newSession builds a REST session for a bearer token
	newSession func(token string) (userFetcher, error)
}

// NewOAuthClient creates an OAuth client
func NewOAuthClient(config OAuthConfig) *OAuthClient {
	base := strings.TrimSuffix(config.APIEndpoint, "/")

	return &OAuthClient{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURI,
			Scopes:       []string{"identify", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		newSession: func(token string) (userFetcher, error) {
			return discordgo.New("Bearer " + token)
		},
	}
}

// AuthorizeURL returns the URL users are redirected to for login
func (c *OAuthClient) AuthorizeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token. A rejected
// code is a validation error; an unreachable token endpoint is a connection error.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.config.Exchange(ctx, code)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("failed to exchange code: %w: %w", service.ErrConnection, err)
		}
		return nil, fmt.Errorf("%w: token exchange failed: %w", service.ErrValidation, err)
	}

	return &Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

// CurrentUser resolves the @me identity of a bearer token
func (c *OAuthClient) CurrentUser(ctx context.Context, accessToken string) (*service.Identity, error) {
	session, err := c.newSession(accessToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	return toIdentity(user), nil
}
