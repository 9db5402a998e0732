package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
}

func TestNewUUID_Unique(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	assert.False(t, first.IsEqual(second))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("valid uuid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("invalid uuid string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("")

		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trip through bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02})

		require.Error(t, err)
	})

	t.Run("nil uuid bytes fail validation", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed uuid is valid", func(t *testing.T) {
		id := kernel.NewUUID()
		require.NoError(t, id.Validate())
	})

	t.Run("zero value uuid is invalid", func(t *testing.T) {
		var id kernel.UUID
		require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	raw := id.Bytes()
	same, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)

	assert.True(t, id.IsEqual(same))
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}
