package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripEmphasis(t *testing.T) {
	u := New()

	t.Run("Bold", func(t *testing.T) {
		assert.Equal(t, "Tu reclamo quedó ingresado con el número REC-123.",
			u.StripEmphasis("Tu reclamo quedó ingresado con el número **REC-123**."))
	})

	t.Run("Italic", func(t *testing.T) {
		assert.Equal(t, "hora confirmada", u.StripEmphasis("hora *confirmada*"))
	})

	t.Run("Underscore", func(t *testing.T) {
		assert.Equal(t, "importante", u.StripEmphasis("__importante__"))
	})

	t.Run("Plain Text Untouched", func(t *testing.T) {
		assert.Equal(t, "sin formato", u.StripEmphasis("sin formato"))
	})
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id, 26)
}
