package dto

import (
	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/pager"
	"hire-portal/internal/usecase"
	"hire-portal/internal/viewmodel"
)

type AdminUserResponse struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	PhoneNumber string         `json:"phone_number"`
	Role        string         `json:"role"`
	Roles       []string       `json:"roles"`
	Enabled     bool           `json:"enabled"`
	StatusPill  viewmodel.Pill `json:"status_pill"`
	CreatedAt   string         `json:"created_at"`
}

type UserListResponse struct {
	Items       []AdminUserResponse `json:"items"`
	Meta        pager.Meta          `json:"meta"`
	RoleOptions []string            `json:"role_options"`
}

type RolesUpdateRequest struct {
	Roles  []string `json:"roles"`
	Reason string   `json:"reason"`
}

type RolesResponse struct {
	Roles []string `json:"roles"`
}

func NewAdminUserResponse(r adminuser.Row) AdminUserResponse {
	roles := r.Roles
	if roles == nil {
		roles = []string{}
	}
	return AdminUserResponse{
		ID:          r.ID,
		Username:    r.Username,
		Email:       r.Email,
		FullName:    r.FullName(),
		PhoneNumber: r.PhoneNumber,
		Role:        viewmodel.PrimaryRoleLabel(r.Roles),
		Roles:       roles,
		Enabled:     r.IsEnabled(),
		StatusPill:  viewmodel.StatusPill(r.Enabled),
		CreatedAt:   viewmodel.FormatTimestamp(r.CreatedTimestamp),
	}
}

func NewUserListResponse(pg usecase.UserPage) UserListResponse {
	items := make([]AdminUserResponse, 0, len(pg.Items))
	for _, r := range pg.Items {
		items = append(items, NewAdminUserResponse(r))
	}
	return UserListResponse{
		Items:       items,
		Meta:        pg.Meta,
		RoleOptions: nonNil(pg.RoleOptions),
	}
}
