package openpix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"Unauthorized401", 401, `{"error": "invalid token"}`, KindUnauthorized},
		{"Forbidden403", 403, `{}`, KindUnauthorized},
		{"NotFound404", 404, `{}`, KindNotFound},
		{"Conflict409", 409, `{}`, KindConflict},
		{"ConflictFromBodyEnglish", 400, `{"error": "pix key already registered"}`, KindConflict},
		{"ConflictFromBodyPortuguese", 400, `{"error": "Chave Pix já cadastrada"}`, KindConflict},
		{"NotFoundFromBodyEnglish", 400, `{"error": "charge not found"}`, KindNotFound},
		{"NotFoundFromBodyPortuguese", 400, `{"error": "Cobrança não encontrada"}`, KindNotFound},
		{"UnknownServerError", 500, `{"error": "boom"}`, KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.status, tc.body))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := newAPIError(404, []byte(`{"error": "charge not found"}`))
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not_found")
}

func TestErrorPredicates(t *testing.T) {
	notFound := newAPIError(404, nil)
	conflict := newAPIError(409, nil)
	unauthorized := newAPIError(401, nil)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsConflict(unauthorized))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(notFound))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("ensuring sub-account: %w", conflict)
	assert.True(t, IsConflict(wrapped))

	assert.False(t, IsNotFound(ErrSplitExceedsTotal))
}
