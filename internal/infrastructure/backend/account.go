package backend

import (
	"context"
	"errors"
	"net/http"

	"hire-portal/internal/domain/profile"
)

var ErrAccountURLMissing = errors.New("account url not configured")

func (c *Client) GetAccount(ctx context.Context) (profile.Account, error) {
	if c == nil || c.accountURL == "" {
		return profile.Account{}, ErrAccountURLMissing
	}
	var out profile.Account
	err := c.doJSON(ctx, http.MethodGet, c.accountURL, nil, &out)
	return out, err
}

// UpdateAccount posts the whole account document back; the identity provider
// replaces every field it receives.
func (c *Client) UpdateAccount(ctx context.Context, acc profile.Account) error {
	if c == nil || c.accountURL == "" {
		return ErrAccountURLMissing
	}
	return c.doJSON(ctx, http.MethodPost, c.accountURL, acc, nil)
}
