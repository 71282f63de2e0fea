// Package session implements the server-side session store. Session state
// lives in Redis; the browser holds only a signed token naming its entry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"threaded/internal/cache"
	"threaded/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the name of the session cookie.
const CookieName = "threaded_session"

const tokenIssuer = "threaded"

// ErrNoSession is returned when a token does not resolve to a stored session.
var ErrNoSession = errors.New("session: no such session")

// Data is the payload persisted per session. The request-counter field names
// keep the wire spelling the UI templates already bind to.
type Data struct {
	UserID               uint   `json:"user_id,omitempty"`
	FirstName            string `json:"first_name,omitempty"`
	ReceivedRequestCount int    `json:"receieved_request_count"`
	SentRequestCount     int    `json:"sent_request_count"`
	TotalRequestCount    int    `json:"total_request_count"`
	Flash                string `json:"flash,omitempty"`
}

// Authenticated reports whether the session belongs to a logged-in user.
func (d *Data) Authenticated() bool {
	return d.UserID != 0
}

// ClearUser removes the authenticated identity and derived counters,
// leaving the session itself (and any pending flash) intact.
func (d *Data) ClearUser() {
	d.UserID = 0
	d.FirstName = ""
	d.ReceivedRequestCount = 0
	d.SentRequestCount = 0
	d.TotalRequestCount = 0
}

// Session is a loaded session plus the store handle needed to persist it.
type Session struct {
	ID string
	Data

	store *Store
}

// Save writes the session payload back to the store.
func (s *Session) Save(ctx context.Context) error {
	return s.store.save(ctx, s.ID, &s.Data)
}

// Destroy removes the session from the store.
func (s *Session) Destroy(ctx context.Context) error {
	return s.store.destroy(ctx, s.ID)
}

// SetFlash records a one-shot user-facing message and persists the session.
func (s *Session) SetFlash(ctx context.Context, msg string) error {
	s.Flash = msg
	return s.Save(ctx)
}

// PopFlash returns the pending flash message and clears it.
func (s *Session) PopFlash(ctx context.Context) (string, error) {
	if s.Flash == "" {
		return "", nil
	}
	msg := s.Flash
	s.Flash = ""
	return msg, s.Save(ctx)
}

// Store creates, loads and destroys sessions. It is injected explicitly into
// the server; there is no ambient global session state.
type Store struct {
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewStore returns a session store backed by the given Redis client.
func NewStore(client *redis.Client, secret string, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("session: redis client is required")
	}
	if secret == "" {
		return nil, errors.New("session: signing secret is required")
	}
	return &Store{redis: client, secret: []byte(secret), ttl: ttl}, nil
}

// Create stores a new session and returns it along with the signed cookie token.
func (st *Store) Create(ctx context.Context, data Data) (*Session, string, error) {
	sid := uuid.New().String()
	if err := st.save(ctx, sid, &data); err != nil {
		return nil, "", err
	}

	token, err := st.signToken(sid)
	if err != nil {
		// Don't leave an unreferencable session behind.
		_ = st.destroy(ctx, sid)
		return nil, "", err
	}

	middleware.SessionOps.WithLabelValues("create").Inc()
	return &Session{ID: sid, Data: data, store: st}, token, nil
}

// Get verifies the token and loads the referenced session.
// A forged, expired or dangling token yields ErrNoSession.
func (st *Store) Get(ctx context.Context, token string) (*Session, error) {
	sid, err := st.parseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	raw, err := st.redis.Get(ctx, cache.SessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session: load %s: %w", sid, err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", sid, err)
	}

	return &Session{ID: sid, Data: data, store: st}, nil
}

func (st *Store) save(ctx context.Context, sid string, data *Data) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sid, err)
	}
	if err := st.redis.Set(ctx, cache.SessionKey(sid), b, st.ttl).Err(); err != nil {
		return fmt.Errorf("session: store %s: %w", sid, err)
	}
	middleware.SessionOps.WithLabelValues("save").Inc()
	return nil
}

func (st *Store) destroy(ctx context.Context, sid string) error {
	if err := st.redis.Del(ctx, cache.SessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("session: destroy %s: %w", sid, err)
	}
	middleware.SessionOps.WithLabelValues("destroy").Inc()
	return nil
}

func (st *Store) signToken(sid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iss": tokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(st.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(st.secret)
}

func (st *Store) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("session: unexpected signing method %v", token.Header["alg"])
		}
		return st.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}

// TTL returns the configured session lifetime.
func (st *Store) TTL() time.Duration {
	return st.ttl
}
