package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/transport"
)

const requestTimeout = 2 * time.Second

// Client resolves access tokens into users with the auth service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport.NewLoggingRoundTripper(http.DefaultTransport),
		},
	}
}

type validateRequest struct {
	Token string `json:"accessToken"`
}

type validateResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CustomerKey string    `json:"customerKey"`
}

func (c *Client) User(ctx context.Context, token string) (entity.User, error) {
	j, err := json.Marshal(validateRequest{Token: token})
	if err != nil {
		return entity.User{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/validate", bytes.NewReader(j))
	if err != nil {
		return entity.User{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.User{}, fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return entity.User{}, entity.ErrUnauthenticated
	default:
		body, _ := io.ReadAll(resp.Body)
		return entity.User{}, fmt.Errorf("unexpected status code: %d\nbody: %s", resp.StatusCode, body)
	}

	var data validateResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return entity.User{}, fmt.Errorf("decode response: %w", err)
	}

	return entity.User{
		ID:          data.ID,
		Email:       data.Email,
		Role:        data.Role,
		CustomerKey: data.CustomerKey,
	}, nil
}
