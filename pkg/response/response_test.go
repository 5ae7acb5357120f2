package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessOmitsErrorFields(t *testing.T) {
	raw, err := json.Marshal(Success(http.StatusOK, map[string]int{"n": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","status_code":200,"data":{"n":1}}`, string(raw))
}

func TestErrorWithDetails(t *testing.T) {
	resp := ErrorWithDetails(http.StatusUnprocessableEntity, "document is invalid", []string{"line 1: qty must be greater than zero"})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "error",
		"status_code": 422,
		"error": "document is invalid",
		"details": ["line 1: qty must be greater than zero"]
	}`, string(raw))
}
