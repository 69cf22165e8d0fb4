package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, Detail(rec, http.StatusNotFound, "Student not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"Student not found"}`, rec.Body.String())
}

func TestValidationDetail(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	err := validator.New().Struct(payload{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, ValidationDetail(rec, err.(validator.ValidationErrors)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":"field Name is required"}`, rec.Body.String())
}

func TestWriteJSONEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusOK, Message{
		Message: "Student created successfully",
		Data:    map[string]any{"name": "David", "age": 21},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"Student created successfully","data":{"name":"David","age":21}}`,
		rec.Body.String())
}
