package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CookieName is the cookie carrying the session id
const CookieName = "foxy_session"

const keyPrefix = "foxyweb:session:"

// UserInfo is the OAuth profile cached in the session
type UserInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar,omitempty"`
	GlobalName string `json:"globalName,omitempty"`
}

// Data is the state stored per session
type Data struct {
	BearerToken string    `json:"bearerToken"`
	UserInfo    *UserInfo `json:"userInfo,omitempty"`
}

// Authenticated reports whether the session holds a usable login
func (d *Data) Authenticated() bool {
	return d != nil && d.BearerToken != "" && d.UserInfo != nil
}

// Store persists sessions in Redis with a sliding TTL
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// Options configures the Redis connection of a Store
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Secure   bool // Set the Secure flag on cookies
}

// Connect creates a Store and verifies the Redis connection
func Connect(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.WithFields(log.Fields{
		"addr": opts.Addr,
		"db":   opts.DB,
	}).Info("Connected to session store")

	return NewStore(client, opts.TTL, opts.Secure), nil
}

// NewStore wraps an existing Redis client
func NewStore(client *redis.Client, ttl time.Duration, secure bool) *Store {
	return &Store{client: client, ttl: ttl, secure: secure}
}

func (s *Store) key(id string) string {
	return keyPrefix + id
}

// Get loads a session by id, returning nil if it does not exist
func (s *Store) Get(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &data, nil
}

// Save stores the session under id, generating a new id when empty.
// The stored id is returned.
func (s *Store) Save(ctx context.Context, id string, data *Data) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return id, nil
}

// Destroy removes a session
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *Store) Close() error {
	return s.client.Close()
}

// IDFromRequest returns the session id carried by the request cookie
func IDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetCookie writes the session cookie
func (s *Store) SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
