package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("Valid RUT", func(t *testing.T) {
		assert.True(t, Validate("12.345.678-5"))
		assert.True(t, Validate("12345678-5"))
		assert.True(t, Validate("123456785"))
	})

	t.Run("Check Character K", func(t *testing.T) {
		// body whose modulo-11 remainder maps to K
		assert.True(t, Validate("20.347.878-K"))
		assert.True(t, Validate("20347878k"))
	})

	t.Run("Wrong Check Digit", func(t *testing.T) {
		assert.False(t, Validate("12.345.678-6"))
		assert.False(t, Validate("12345678-0"))
	})

	t.Run("Malformed Input", func(t *testing.T) {
		assert.False(t, Validate(""))
		assert.False(t, Validate("5"))
		assert.False(t, Validate("abcdefgh-5"))
		assert.False(t, Validate("12.345.67x-5"))
	})
}

func TestFormat(t *testing.T) {
	t.Run("Canonicalizes Valid RUT", func(t *testing.T) {
		formatted, err := Format("123456785")
		assert.NoError(t, err)
		assert.Equal(t, "12.345.678-5", formatted)
	})

	t.Run("Already Formatted", func(t *testing.T) {
		formatted, err := Format("12.345.678-5")
		assert.NoError(t, err)
		assert.Equal(t, "12.345.678-5", formatted)
	})

	t.Run("Uppercases K", func(t *testing.T) {
		formatted, err := Format("20347878k")
		assert.NoError(t, err)
		assert.Equal(t, "20.347.878-K", formatted)
	})

	t.Run("Short Body", func(t *testing.T) {
		formatted, err := Format("1-9")
		assert.NoError(t, err)
		assert.Equal(t, "1-9", formatted)
	})

	t.Run("Rejects Invalid Checksum", func(t *testing.T) {
		_, err := Format("12.345.678-4")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		_, err := Format("hola")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}
