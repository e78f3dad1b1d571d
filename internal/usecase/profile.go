package usecase

import (
	"context"
	"log"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/profile"
	"hire-portal/internal/validation"
)

// ProfileForm is the editable profile as the user sees it: the phone number is
// the 8-digit local part.
type ProfileForm struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhoneNational string `json:"phoneNational"`
}

type Profile struct {
	account AccountGateway
	logger  *log.Logger
}

func NewProfile(account AccountGateway, logger *log.Logger) *Profile {
	return &Profile{account: account, logger: logger}
}

func (u *Profile) Get(ctx context.Context, s access.Session) (ProfileForm, error) {
	if u == nil || u.account == nil {
		return ProfileForm{}, ErrInternal
	}
	if !s.Authenticated {
		return ProfileForm{}, ErrForbidden
	}
	acc, err := u.account.GetAccount(ctx)
	if err != nil {
		return ProfileForm{}, remote(OpLoadProfile, err)
	}
	p := profile.FromAccount(acc)
	return ProfileForm{
		Username:      p.Username,
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		PhoneNational: validation.NationalPhone(p.PhoneNumber),
	}, nil
}

// Update reads the current account, applies the form and writes the whole
// account back. Email is never changed.
func (u *Profile) Update(ctx context.Context, s access.Session, form ProfileForm) (ProfileForm, error) {
	if u == nil || u.account == nil {
		return ProfileForm{}, ErrInternal
	}
	if !s.Authenticated {
		return ProfileForm{}, ErrForbidden
	}
	if strings.TrimSpace(form.Username) == "" {
		return ProfileForm{}, ErrInvalidInput
	}
	if err := validation.ValidateNationalPhone(form.PhoneNational); err != nil {
		return ProfileForm{}, err
	}

	acc, err := u.account.GetAccount(ctx)
	if err != nil {
		return ProfileForm{}, remote(OpLoadProfile, err)
	}

	next := profile.Profile{
		Username:    form.Username,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: validation.InternationalPhone(form.PhoneNational),
	}.Apply(acc)

	if err := u.account.UpdateAccount(ctx, next); err != nil {
		return ProfileForm{}, remote(OpUpdateProfile, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Profile] Updated user=%s", s.UserID)
	}

	return ProfileForm{
		Username:      next.Username,
		Email:         next.Email,
		FirstName:     next.FirstName,
		LastName:      next.LastName,
		PhoneNational: validation.NationalPhone(next.Attr(profile.PhoneAttribute)),
	}, nil
}
