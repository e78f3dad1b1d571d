package profile

import "strings"

const PhoneAttribute = "phoneNumber"

// Account is the identity provider's self-service account document.
type Account struct {
	Username   string              `json:"username,omitempty"`
	FirstName  string              `json:"firstName,omitempty"`
	LastName   string              `json:"lastName,omitempty"`
	Email      string              `json:"email,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

func (a Account) Attr(key string) string {
	if vs := a.Attributes[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// SetAttr replaces key with a single value, or clears it when value is blank.
func (a *Account) SetAttr(key, value string) {
	if a.Attributes == nil {
		a.Attributes = map[string][]string{}
	}
	if strings.TrimSpace(value) == "" {
		a.Attributes[key] = []string{}
		return
	}
	a.Attributes[key] = []string{value}
}

type Profile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

func FromAccount(a Account) Profile {
	return Profile{
		Username:    a.Username,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.Attr(PhoneAttribute),
	}
}

// Apply writes the editable fields of p onto a. Email is never changed.
func (p Profile) Apply(a Account) Account {
	out := a
	if len(a.Attributes) > 0 {
		out.Attributes = make(map[string][]string, len(a.Attributes))
		for k, v := range a.Attributes {
			out.Attributes[k] = v
		}
	}
	out.Username = strings.TrimSpace(p.Username)
	out.FirstName = strings.TrimSpace(p.FirstName)
	out.LastName = strings.TrimSpace(p.LastName)
	out.SetAttr(PhoneAttribute, p.PhoneNumber)
	return out
}
