package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/utils"
	authorizer "github.com/localnerve/authorizer-go"
	"go.uber.org/zap"
)

// SessionUser is the identity behind a validated session cookie
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionValidator validates a session cookie
type SessionValidator interface {
	ValidateSession(cookie string) (*SessionUser, error)
}

// AuthorizerValidator validates sessions against the Authorizer service.
// The client is created on first use so the server can start while Authorizer is still booting.
// A failed initialization is retried on the next call.
type AuthorizerValidator struct {
	cfg    *config.Config
	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// NewAuthorizerValidator returns a validator for the configured Authorizer instance
func NewAuthorizerValidator(cfg *config.Config) *AuthorizerValidator {
	return &AuthorizerValidator{cfg: cfg}
}

func (v *AuthorizerValidator) init() (*authorizer.AuthorizerClient, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.client != nil {
		return v.client, nil
	}

	if err := utils.PingAuthorizer(context.Background(), v.cfg.AuthzURL); err != nil {
		logging.L().Warn("authorizer unreachable", zap.String("url", v.cfg.AuthzURL), zap.Error(err))
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	logging.L().Info("initializing authorizer",
		zap.String("url", v.cfg.AuthzURL),
		zap.String("client_id", v.cfg.AuthzClientID),
		zap.String("redirect_url", v.cfg.PublicURL))

	client, err := authorizer.NewAuthorizerClient(v.cfg.AuthzClientID, v.cfg.AuthzURL, v.cfg.PublicURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	v.client = client
	return client, nil
}

// ValidateSession validates a session cookie and returns the session's user
func (v *AuthorizerValidator) ValidateSession(cookie string) (*SessionUser, error) {
	client, err := v.init()
	if err != nil {
		return nil, err
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	// The SDK user type carries many optional fields; only id and email matter here.
	raw, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	var user SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("session has no user")
	}
	return &user, nil
}
