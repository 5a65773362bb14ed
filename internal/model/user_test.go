package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		user User
	}{
		{name: "guest", user: GuestUser{Name: "Pat Doe", EmailAddress: "pat@example.com"}},
		{name: "google", user: OAuthUser{Provider: LoginGoogle}},
		{name: "outlook", user: OAuthUser{Provider: LoginOutlook}},
		{name: "password", user: PasswordUser{EmailAddress: "pat@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := MarshalUser(tt.user)
			require.NoError(t, err)

			got, err := UnmarshalUser(raw)
			require.NoError(t, err)

			assert.Equal(t, tt.user.Method(), got.Method())
			assert.Equal(t, tt.user.Email(), got.Email())
			assert.Equal(t, tt.user.DisplayName(), got.DisplayName())
		})
	}
}

func TestMarshalUserNil(t *testing.T) {
	_, err := MarshalUser(nil)
	require.Error(t, err)
}

func TestUnmarshalUserRejectsGarbage(t *testing.T) {
	_, err := UnmarshalUser([]byte("not json"))
	require.Error(t, err)

	_, err = UnmarshalUser([]byte(`{"user":"ldap"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown login method")
}

func TestOAuthUserIdentities(t *testing.T) {
	google := OAuthUser{Provider: LoginGoogle}
	assert.Equal(t, GoogleUserEmail, google.Email())
	assert.Equal(t, "Rachel McAdams", google.DisplayName())

	outlook := OAuthUser{Provider: LoginOutlook}
	assert.Equal(t, OutlookUserEmail, outlook.Email())
	assert.Equal(t, "John Smith", outlook.DisplayName())
}
