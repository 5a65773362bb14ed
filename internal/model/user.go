package model

import (
	"encoding/json"
	"fmt"
)

// LoginMethod tags the variant of a logged-in user.
type LoginMethod string

// Supported login methods.
const (
	LoginGuest    LoginMethod = "guest"
	LoginGoogle   LoginMethod = "gmail"
	LoginOutlook  LoginMethod = "outlook"
	LoginPassword LoginMethod = "password"
)

// Fixed identities for the mock OAuth providers.
const (
	GoogleUserEmail  = "user@gmail.com"
	OutlookUserEmail = "user@outlook.com"
)

// User is the sealed sum of login variants. Each variant carries only the
// fields its login method provides.
type User interface {
	Method() LoginMethod
	// Email returns the address that keys this user's storage partitions.
	Email() string
	// DisplayName returns a human-readable name for the user.
	DisplayName() string
}

// GuestUser is a guest session identified by a self-reported name and email.
type GuestUser struct {
	Name         string `json:"name"`
	EmailAddress string `json:"email"`
}

// Method implements User.
func (u GuestUser) Method() LoginMethod { return LoginGuest }

// Email implements User.
func (u GuestUser) Email() string { return u.EmailAddress }

// DisplayName implements User.
func (u GuestUser) DisplayName() string { return u.Name }

// OAuthUser is a session created through one of the mock OAuth providers.
// The provider determines a fixed identity.
type OAuthUser struct {
	Provider LoginMethod `json:"provider"`
}

// Method implements User.
func (u OAuthUser) Method() LoginMethod { return u.Provider }

// Email implements User.
func (u OAuthUser) Email() string {
	if u.Provider == LoginOutlook {
		return OutlookUserEmail
	}
	return GoogleUserEmail
}

// DisplayName implements User.
func (u OAuthUser) DisplayName() string {
	if u.Provider == LoginOutlook {
		return "John Smith"
	}
	return "Rachel McAdams"
}

// PasswordUser is a session created with an email/password pair. The
// password itself is never persisted.
type PasswordUser struct {
	EmailAddress string `json:"email"`
}

// Method implements User.
func (u PasswordUser) Method() LoginMethod { return LoginPassword }

// Email implements User.
func (u PasswordUser) Email() string { return u.EmailAddress }

// DisplayName implements User.
func (u PasswordUser) DisplayName() string { return "User Account" }

// userEnvelope is the persisted form of a User: a method tag plus the
// variant's own fields.
type userEnvelope struct {
	User LoginMethod     `json:"user"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalUser encodes a user for the session partition.
func MarshalUser(u User) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("cannot marshal nil user")
	}
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user variant: %w", err)
	}
	return json.Marshal(userEnvelope{User: u.Method(), Data: data})
}

// UnmarshalUser decodes a user persisted by MarshalUser.
func UnmarshalUser(raw []byte) (User, error) {
	var env userEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode user envelope: %w", err)
	}
	switch env.User {
	case LoginGuest:
		var u GuestUser
		if err := json.Unmarshal(env.Data, &u); err != nil {
			return nil, fmt.Errorf("failed to decode guest user: %w", err)
		}
		return u, nil
	case LoginGoogle, LoginOutlook:
		return OAuthUser{Provider: env.User}, nil
	case LoginPassword:
		var u PasswordUser
		if err := json.Unmarshal(env.Data, &u); err != nil {
			return nil, fmt.Errorf("failed to decode password user: %w", err)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unknown login method %q", env.User)
	}
}
