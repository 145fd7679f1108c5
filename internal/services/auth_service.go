package services

import (
	"errors"
	"fmt"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/utils"
)

// authzState holds the lazily constructed authorizer client. Construction
// needs the request protocol and host for the redirect URL, so it cannot
// happen at startup; a failed init is retried on the next request.
type authzState struct {
	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

var authz authzState

// InitAuthorizer constructs the authorizer client on the first
// authenticated request. A no-op when admin auth is not configured.
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	if !cfg.AdminAuthEnabled() {
		return nil
	}

	authz.mu.Lock()
	defer authz.mu.Unlock()
	if authz.client != nil {
		return nil
	}

	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		return fmt.Errorf("authorizer ping failed: %w", err)
	}

	redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create authorizer client: %w", err)
	}
	authz.client = client
	return nil
}

// ValidateSession validates a session cookie for the given roles and
// returns the session's user on success.
func ValidateSession(cookie string, roles []string) (interface{}, error) {
	authz.mu.Lock()
	client := authz.client
	authz.mu.Unlock()
	if client == nil {
		return nil, errors.New("authorizer client not initialized")
	}

	rolePtrs := make([]*string, len(roles))
	for i := range roles {
		rolePtrs[i] = &roles[i]
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolePtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, errors.New("session is not valid")
	}

	return res.User, nil
}
