package request

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Username:     "alice",
		Password:     "password1",
		Confirmation: "password1",
	}
	require.NoError(t, valid.Validate())
}

func TestRegisterRequest_Validate_MissingFields(t *testing.T) {
	cases := []RegisterRequest{
		{Password: "password1", Confirmation: "password1"},
		{Username: "alice", Confirmation: "password1"},
		{Username: "alice", Password: "password1"},
		{},
	}

	for _, req := range cases {
		req := req
		require.Error(t, req.Validate(), "%+v", req)
	}
}

func TestRegisterRequest_Validate_WeakPassword(t *testing.T) {
	cases := []string{
		"short1",      // under 8 characters
		"onlyletters", // no digit
		"12345678",    // no letter
	}

	for _, password := range cases {
		req := RegisterRequest{
			Username:     "alice",
			Password:     password,
			Confirmation: password,
		}
		require.ErrorIs(t, req.Validate(), errInvalidPassword, "password %q", password)
	}
}

func TestRegisterRequest_Validate_ConfirmationMismatch(t *testing.T) {
	req := RegisterRequest{
		Username:     "alice",
		Password:     "password1",
		Confirmation: "password2",
	}
	require.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
}

func TestLoginRequest_Validate(t *testing.T) {
	require.NoError(t, (&LoginRequest{Username: "alice", Password: "password1"}).Validate())
	require.Error(t, (&LoginRequest{Password: "password1"}).Validate())
	require.Error(t, (&LoginRequest{Username: "alice"}).Validate())
}
