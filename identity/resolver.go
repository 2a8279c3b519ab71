package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"foxyweb/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// userFetcher is the part of *discordgo.Session the resolver uses
type userFetcher interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// DiscordResolver resolves user ids through the Discord REST API
type DiscordResolver struct {
	session userFetcher
}

// NewDiscordResolver creates a resolver authenticated with a bot token
func NewDiscordResolver(token string) (*DiscordResolver, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &DiscordResolver{session: dg}, nil
}

// newResolverWithFetcher is used by tests
func newResolverWithFetcher(fetcher userFetcher) *DiscordResolver {
	return &DiscordResolver{session: fetcher}
}

// ResolveUser returns the identity of userID, or nil if Discord does not know it
func (r *DiscordResolver) ResolveUser(ctx context.Context, userID string) (*service.Identity, error) {
	user, err := r.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownUser(err) {
			log.WithField("userID", userID).Debug("Discord user not found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w: %w", userID, service.ErrConnection, err)
	}

	return toIdentity(user), nil
}

func isUnknownUser(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownUser {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

func toIdentity(user *discordgo.User) *service.Identity {
	return &service.Identity{
		ID:         user.ID,
		Username:   user.Username,
		GlobalName: user.GlobalName,
		Avatar:     user.Avatar,
	}
}

// PassthroughResolver accepts every id without contacting Discord.
// Used when no bot token is configured.
type PassthroughResolver struct{}

// ResolveUser returns an identity carrying only the id
func (PassthroughResolver) ResolveUser(ctx context.Context, userID string) (*service.Identity, error) {
	return &service.Identity{ID: userID}, nil
}
