package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttribution(t *testing.T) {
	attr := ParseAttribution(map[string]string{
		"userId":  "user-1",
		"noteIds": "algebra-notes,calculus-notes",
	})

	assert.Equal(t, "user-1", attr.UserID)
	assert.Equal(t, []string{"algebra-notes", "calculus-notes"}, attr.ProductIDs)
	assert.True(t, attr.Valid())
}

func TestParseAttribution_TrimsAndSkipsEmptyIDs(t *testing.T) {
	attr := ParseAttribution(map[string]string{
		"userId":  "user-1",
		"noteIds": " algebra-notes , ,calculus-notes,",
	})

	assert.Equal(t, []string{"algebra-notes", "calculus-notes"}, attr.ProductIDs)
}

func TestParseAttribution_MissingMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"empty metadata", map[string]string{}},
		{"missing user", map[string]string{"noteIds": "a"}},
		{"missing products", map[string]string{"userId": "user-1"}},
		{"blank products", map[string]string{"userId": "user-1", "noteIds": " , "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := ParseAttribution(tt.metadata)
			assert.False(t, attr.Valid())
		})
	}
}
