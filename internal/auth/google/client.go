package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bazaar/internal/auth/identity"
	apperrors "bazaar/internal/errors"
)

// Client verifies Google access tokens against the userinfo endpoint.
type Client struct {
	userInfoURL string
	httpClient  *http.Client
}

func NewClient(userInfoURL string) *Client {
	return &Client{
		userInfoURL: userInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type userInfo struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

func (c *Client) Verify(ctx context.Context, accessToken string) (*identity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUnauthorizedError("invalid Google access token")
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo response: %w", err)
	}

	return &identity.Identity{
		ID:      info.ID,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
