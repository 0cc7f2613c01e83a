package apperr

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToJSON_ContainsAllRequiredFields(t *testing.T) {
	errs := []*AppError{
		New(CodeAPI, "generic"),
		NewValidation("bad field"),
		NewAuthentication(""),
		NewTimeout("late"),
		NewInternal("defect", nil),
		Normalize(json.Unmarshal([]byte("{"), &struct{}{})),
	}

	for _, e := range errs {
		payload := e.ToJSON()

		require.NotEmpty(t, payload.Name)
		require.NotEmpty(t, payload.Message)
		require.NotEmpty(t, payload.Code)
		require.NotZero(t, payload.StatusCode)
		require.NotEmpty(t, payload.Stack)

		ts, err := time.Parse(time.RFC3339Nano, payload.Timestamp)
		require.NoError(t, err)
		require.False(t, ts.IsZero())
	}
}

func TestToJSON_IncludesContext(t *testing.T) {
	e := NewDatabase("query failed", nil).WithContext("table", "users")

	payload := e.ToJSON()
	require.Equal(t, map[string]any{"table": "users"}, payload.Context)
}

func TestMarshalJSON(t *testing.T) {
	e := NewValidation("name required").WithContext("field", "name")

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, "ValidationError", decoded["name"])
	require.Equal(t, "name required", decoded["message"])
	require.Equal(t, "VALIDATION_ERROR", decoded["code"])
	require.Equal(t, float64(400), decoded["statusCode"])
	require.Equal(t, true, decoded["isOperational"])
	require.Contains(t, decoded, "timestamp")
	require.Contains(t, decoded, "stack")
	require.Equal(t, map[string]any{"field": "name"}, decoded["context"])
}
