package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"foxyweb/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	users map[string]*discordgo.User
	err   error
}

func (f *fakeFetcher) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownUser, Message: "Unknown User"},
	}
}

func TestDiscordResolver_ResolveUser(t *testing.T) {
	resolver := newResolverWithFetcher(&fakeFetcher{users: map[string]*discordgo.User{
		"123": {ID: "123", Username: "foxy", GlobalName: "Foxy", Avatar: "abc"},
	}})

	identity, err := resolver.ResolveUser(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, &service.Identity{ID: "123", Username: "foxy", GlobalName: "Foxy", Avatar: "abc"}, identity)

	identity, err = resolver.ResolveUser(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestDiscordResolver_TransportError(t *testing.T) {
	resolver := newResolverWithFetcher(&fakeFetcher{err: errors.New("dial tcp: timeout")})

	_, err := resolver.ResolveUser(context.Background(), "123")
	assert.ErrorIs(t, err, service.ErrConnection)
}

func TestPassthroughResolver(t *testing.T) {
	identity, err := PassthroughResolver{}.ResolveUser(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", identity.ID)
}

func TestOAuthClient_AuthorizeURL(t *testing.T) {
	client := NewOAuthClient(OAuthConfig{
		ClientID:    "client",
		RedirectURI: "http://localhost/auth/callback",
		APIEndpoint: "https://discord.com/api/v10/",
	})

	parsed, err := url.Parse(client.AuthorizeURL(""))
	require.NoError(t, err)
	assert.Equal(t, "/api/v10/oauth2/authorize", parsed.Path)
	assert.Equal(t, "client", parsed.Query().Get("client_id"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "identify guilds", parsed.Query().Get("scope"))
	assert.Equal(t, "http://localhost/auth/callback", parsed.Query().Get("redirect_uri"))
	assert.False(t, parsed.Query().Has("state"))

	withState, err := url.Parse(client.AuthorizeURL("s1"))
	require.NoError(t, err)
	assert.Equal(t, "s1", withState.Query().Get("state"))
}

func TestOAuthClient_Exchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "c", r.PostForm.Get("client_id"))
		assert.Equal(t, "s", r.PostForm.Get("client_secret"))

		if r.PostForm.Get("code") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":604800}`))
	}))
	defer server.Close()

	client := NewOAuthClient(OAuthConfig{ClientID: "c", ClientSecret: "s", APIEndpoint: server.URL})

	token, err := client.Exchange(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "at", token.AccessToken)

	assert.False(t, token.Expiry.IsZero())

	_, err = client.Exchange(context.Background(), "bad")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestOAuthClient_Exchange_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := NewOAuthClient(OAuthConfig{ClientID: "c", ClientSecret: "s", APIEndpoint: endpoint})

	_, err := client.Exchange(context.Background(), "good")
	assert.ErrorIs(t, err, service.ErrConnection)
}

func TestOAuthClient_CurrentUser(t *testing.T) {
	client := NewOAuthClient(OAuthConfig{})
	client.newSession = func(token string) (userFetcher, error) {
		assert.Equal(t, "at", token)
		return &fakeFetcher{users: map[string]*discordgo.User{"@me": {ID: "7", Username: "me"}}}, nil
	}

	identity, err := client.CurrentUser(context.Background(), "at")
	require.NoError(t, err)
	assert.Equal(t, "7", identity.ID)
}
