package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDepth(t *testing.T) {
	tests := []struct {
		name        string
		parentDepth int
		maxDepth    int
		want        int
		wantKind    ErrorKind
	}{
		{"top-level within default", 0, 1, 1, ""},
		{"nested within bound", 1, 3, 2, ""},
		{"at the bound", 2, 3, 3, ""},
		{"exceeds bound", 1, 1, 0, ErrorKindDepthExceeded},
		{"zero max rejects everything", 0, 0, 0, ErrorKindDepthExceeded},
		{"negative max is config error", 0, -1, 0, ErrorKindConfig},
		{"negative parent is config error", -1, 3, 0, ErrorKindConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckDepth(tt.parentDepth, tt.maxDepth)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckDepth_IncrementsByExactlyOne(t *testing.T) {
	depth := 0
	for i := 0; i < 5; i++ {
		next, err := CheckDepth(depth, 10)
		require.NoError(t, err)
		assert.Equal(t, depth+1, next)
		depth = next
	}
}
