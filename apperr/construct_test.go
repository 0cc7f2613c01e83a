package apperr

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "user not found")

	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "user not found", err.Message())
	require.Equal(t, http.StatusNotFound, err.StatusCode())
	require.True(t, err.IsOperational())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.False(t, err.Timestamp().IsZero())
	require.NotEmpty(t, err.Stack())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidation, "age %d out of range", 200)

	require.Equal(t, "age 200 out of range", err.Message())
	require.Equal(t, CodeValidation, err.Code())
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDatabase, "query users")

	require.Equal(t, CodeDatabase, err.Code())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "[DATABASE_ERROR] query users: connection refused", err.Error())
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("x")

	require.Equal(t, CodeValidation, err.Code())
	require.Equal(t, 400, err.StatusCode())
	require.True(t, err.IsOperational())
	require.Equal(t, "ValidationError", err.Name())
}

func TestNewAuthentication_DefaultMessage(t *testing.T) {
	err := NewAuthentication("")

	require.Equal(t, "Authentication required", err.Message())
	require.Equal(t, CodeUnauthorized, err.Code())
	require.Equal(t, 401, err.StatusCode())
	require.True(t, err.IsOperational())
}

func TestNewAuthentication_ExplicitMessage(t *testing.T) {
	err := NewAuthentication("token expired")

	require.Equal(t, "token expired", err.Message())
	require.Equal(t, CodeUnauthorized, err.Code())
}

func TestNewInternal_NonOperational(t *testing.T) {
	err := NewInternal("nil pointer in handler", nil)

	require.False(t, err.IsOperational())
	require.Equal(t, CodeInternal, err.Code())
	require.Equal(t, 500, err.StatusCode())
}

func TestConstructors_StatusDefaults(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   ErrorCode
		status int
	}{
		{NewValidation("m"), CodeValidation, 400},
		{NewAuthentication("m"), CodeUnauthorized, 401},
		{NewAuthorization("m"), CodeForbidden, 403},
		{NewNotFound("m"), CodeNotFound, 404},
		{NewConflict("m"), CodeConflict, 409},
		{NewRateLimit("m"), CodeRateLimited, 429},
		{NewAPI("m"), CodeAPI, 500},
		{NewDatabase("m", nil), CodeDatabase, 500},
		{NewNetwork("m", nil), CodeNetwork, 502},
		{NewTimeout("m"), CodeTimeout, 504},
		{NewUnavailable("m"), CodeUnavailable, 503},
		{NewInternal("m", nil), CodeInternal, 500},
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			require.Equal(t, tc.code, tc.err.Code())
			require.Equal(t, tc.status, tc.err.StatusCode())
		})
	}
}

func TestTimestamp_SetAtConstruction(t *testing.T) {
	before := time.Now().UTC()
	err := New(CodeAPI, "boom")
	after := time.Now().UTC()

	ts := err.Timestamp()
	require.False(t, ts.Before(before))
	require.False(t, ts.After(after))

	// Deriving a copy must not touch the timestamp.
	derived := err.WithContext("k", "v")
	require.Equal(t, ts, derived.Timestamp())
}

func TestWithContext_Immutability(t *testing.T) {
	base := New(CodeAPI, "boom")
	derived := base.WithContext("request", "abc123")

	require.Nil(t, base.Context())
	require.Equal(t, map[string]any{"request": "abc123"}, derived.Context())

	// Mutating the returned copy must not affect the error.
	ctx := derived.Context()
	ctx["request"] = "tampered"
	require.Equal(t, "abc123", derived.Context()["request"])
}

func TestWithContextMap(t *testing.T) {
	err := New(CodeDatabase, "query failed").
		WithContext("table", "users").
		WithContextMap(map[string]any{"attempt": 2, "table": "accounts"})

	require.Equal(t, map[string]any{"table": "accounts", "attempt": 2}, err.Context())
}
