package gate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	"github.com/foodhubhq/storefront-gateway/pkg/types"
)

// Resolver answers "who is making this request" from the credentials
// stashed in the context. A nil session with a nil error means the auth
// backend explicitly reported no session; an error means the lookup
// itself failed and the caller should fail open.
type Resolver interface {
	Resolve(ctx context.Context) (*types.Session, error)
}

// HTTPResolver asks the auth backend's session endpoint, forwarding the
// caller's cookies. It performs exactly one call per invocation and no
// retries; a failed lookup defers to the next navigation.
type HTTPResolver struct {
	client      *backend.Client
	sessionPath string
}

func NewHTTPResolver(client *backend.Client, sessionPath string) (*HTTPResolver, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if sessionPath == "" {
		return nil, fmt.Errorf("session path required")
	}
	return &HTTPResolver{client: client, sessionPath: sessionPath}, nil
}

type sessionResponse struct {
	User *struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (r *HTTPResolver) Resolve(ctx context.Context) (*types.Session, error) {
	raw, err := r.client.Get(ctx, r.sessionPath)
	if err != nil {
		return nil, err
	}

	var payload sessionResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding session response: %w", err)
	}
	if payload.User == nil || payload.User.ID == "" {
		return nil, nil
	}

	return &types.Session{
		UserID: payload.User.ID,
		Role:   types.ParseRole(payload.User.Role),
	}, nil
}
