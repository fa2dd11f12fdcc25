package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	verifier := NewStaticVerifier("admin", "12345")
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid pair", "admin", "12345", true},
		{"wrong password", "admin", "wrong", false},
		{"wrong username", "someone", "12345", false},
		{"both wrong", "someone", "wrong", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := verifier.Verify(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
