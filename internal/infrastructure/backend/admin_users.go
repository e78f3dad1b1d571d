package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hire-portal/internal/domain/adminuser"
)

type reasonBody struct {
	Reason string `json:"reason,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, first, max int, search string) ([]adminuser.Row, error) {
	q := url.Values{}
	q.Set("first", strconv.Itoa(first))
	q.Set("max", strconv.Itoa(max))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}

	var out []adminuser.Row
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/admin/users", q), nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = out[i].Normalize()
	}
	if out == nil {
		out = []adminuser.Row{}
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (adminuser.Row, error) {
	var out adminuser.Row
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/admin/users/"+url.PathEscape(id), nil), nil, &out); err != nil {
		return adminuser.Row{}, err
	}
	return out.Normalize(), nil
}

func (c *Client) UserRoles(ctx context.Context, id string) ([]string, error) {
	var out struct {
		Roles []string `json:"roles"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/admin/users/"+url.PathEscape(id)+"/roles", nil), nil, &out); err != nil {
		return nil, err
	}
	return upper(out.Roles), nil
}

// AllowedRoles lists the roles an administrator may grant.
func (c *Client) AllowedRoles(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/admin/roles", nil), nil, &out); err != nil {
		return nil, err
	}
	return upper(out), nil
}

func (c *Client) UpdateUserRoles(ctx context.Context, id string, upd adminuser.RolesUpdate) error {
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/admin/users/"+url.PathEscape(id)+"/roles", nil), upd, nil)
}

func (c *Client) BlockUser(ctx context.Context, id, reason string) error {
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/admin/users/"+url.PathEscape(id)+"/block", nil), reasonBody{Reason: reason}, nil)
}

func (c *Client) UnblockUser(ctx context.Context, id, reason string) error {
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/admin/users/"+url.PathEscape(id)+"/unblock", nil), reasonBody{Reason: reason}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("/admin/users/"+url.PathEscape(id), nil), nil, nil)
}

func upper(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
