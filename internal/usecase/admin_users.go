package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/audit"
	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/domain/role"
	"hire-portal/internal/pager"
	"hire-portal/internal/search"
)

const DefaultAdminFetchMax = 200

type UserPage struct {
	Items       []adminuser.Row
	Meta        pager.Meta
	RoleOptions []string
}

type AdminUsers struct {
	users    AdminUserGateway
	cache    ListCache
	audit    AuditPublisher
	fetchMax int
	ttl      time.Duration
	logger   *log.Logger
}

func NewAdminUsers(users AdminUserGateway, cache ListCache, pub AuditPublisher, fetchMax int, ttl time.Duration, logger *log.Logger) *AdminUsers {
	if fetchMax <= 0 {
		fetchMax = DefaultAdminFetchMax
	}
	return &AdminUsers{users: users, cache: cache, audit: pub, fetchMax: fetchMax, ttl: ttl, logger: logger}
}

// List fetches up to fetchMax users matching the free-text search on the
// gateway, then filters by enabled state and role locally and pages the
// result.
func (u *AdminUsers) List(ctx context.Context, s access.Session, query string, c search.UserCriteria, pageIndex, size int) (UserPage, error) {
	if u == nil || u.users == nil {
		return UserPage{}, ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return UserPage{}, ErrForbidden
	}
	if size <= 0 {
		size = pager.DefaultSize
	}

	query = strings.TrimSpace(query)
	load := func(ctx context.Context) ([]adminuser.Row, error) {
		return u.users.ListUsers(ctx, 0, u.fetchMax, query)
	}
	all, err := cachedList(ctx, u.cache, u.logger, "Users", UsersCacheKey(query, u.fetchMax), u.ttl, load)
	if err != nil {
		return UserPage{}, remote(OpLoadUsers, err)
	}

	filtered := search.Filter(all, c.Predicates()...)
	items, idx := pager.Slice(filtered, pageIndex, size)
	total := pager.TotalPages(len(filtered), size)

	return UserPage{
		Items:       items,
		Meta:        pager.NewSlidingMeta(idx, size, total, int64(len(filtered))),
		RoleOptions: search.RoleOptions(all),
	}, nil
}

func (u *AdminUsers) Get(ctx context.Context, s access.Session, id string) (adminuser.Row, error) {
	if u == nil || u.users == nil {
		return adminuser.Row{}, ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return adminuser.Row{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return adminuser.Row{}, ErrInvalidInput
	}
	row, err := u.users.GetUser(ctx, id)
	if err != nil {
		return adminuser.Row{}, remote(OpLoadUser, err)
	}
	return row, nil
}

// Roles lists the roles an administrator may grant.
func (u *AdminUsers) Roles(ctx context.Context, s access.Session) ([]string, error) {
	if u == nil || u.users == nil {
		return nil, ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return nil, ErrForbidden
	}
	roles, err := u.users.AllowedRoles(ctx)
	if err != nil {
		return nil, remote(OpLoadUsers, err)
	}
	return roles, nil
}

func (u *AdminUsers) UpdateRoles(ctx context.Context, s access.Session, id string, roles []string, reason string) error {
	if u == nil || u.users == nil {
		return ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	next := role.ParseSet(roles)
	for r := range next {
		if !r.Known() {
			return ErrInvalidInput
		}
	}

	previous, err := u.users.UserRoles(ctx, id)
	if err != nil {
		return remote(OpUpdateRoles, err)
	}

	upd := adminuser.RolesUpdate{Roles: next.Slice(), Reason: strings.TrimSpace(reason)}
	if err := u.users.UpdateUserRoles(ctx, id, upd); err != nil {
		return remote(OpUpdateRoles, err)
	}

	changes := map[string]any{
		"oldRoles": role.ParseSet(previous).Slice(),
		"newRoles": upd.Roles,
	}
	publish(ctx, u.audit, u.logger, audit.NewUserEvent(audit.RoleUpdate, actorOf(s), id, reason, changes))
	u.changed(ctx)
	return nil
}

// SetEnabled blocks or unblocks a user. Both directions need confirmation and
// an administrator may not block themselves.
func (u *AdminUsers) SetEnabled(ctx context.Context, s access.Session, id string, enabled bool, reason string, confirmed bool) error {
	if u == nil || u.users == nil {
		return ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if !enabled && id == s.UserID {
		return ErrForbidden
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	et := audit.UserBlock
	call := u.users.BlockUser
	if enabled {
		et = audit.UserUnblock
		call = u.users.UnblockUser
	}
	if err := call(ctx, id, strings.TrimSpace(reason)); err != nil {
		return remote(OpSetEnabled, err)
	}

	changes := map[string]any{"enabled": map[string]any{"old": !enabled, "new": enabled}}
	publish(ctx, u.audit, u.logger, audit.NewUserEvent(et, actorOf(s), id, reason, changes))
	u.changed(ctx)
	return nil
}

func (u *AdminUsers) Delete(ctx context.Context, s access.Session, id, reason string, confirmed bool) error {
	if u == nil || u.users == nil {
		return ErrInternal
	}
	if !s.HasRole(role.Admin) {
		return ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if id == s.UserID {
		return ErrForbidden
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := u.users.DeleteUser(ctx, id); err != nil {
		return remote(OpDeleteUser, err)
	}

	publish(ctx, u.audit, u.logger, audit.NewUserEvent(audit.UserDelete, actorOf(s), id, reason, map[string]any{"deleted": true}))
	u.changed(ctx)
	return nil
}

func (u *AdminUsers) changed(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateUsers(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Users] Cache invalidation failed: %v", err)
	}
}
