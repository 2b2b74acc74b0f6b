package kernel_test

import (
	"testing"

	"afrimercato/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Identifier used across the parsing tests. Any valid v4 UUID works; this
// one is fixed so the canonical-form assertions stay literal.
const sampleID = "9b2f1c47-3e58-4a0d-8c11-7d64e2a90f35"

func TestNewUUID(t *testing.T) {
	t.Run("produces a valid identifier", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("consecutive calls do not collide", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			id := kernel.NewUUID()
			assert.False(t, seen[id.String()], "duplicate UUID %s", id)
			seen[id.String()] = true
		}
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts every textual form google/uuid parses", func(t *testing.T) {
		forms := map[string]string{
			"canonical":  sampleID,
			"braced":     "{" + sampleID + "}",
			"urn":        "urn:uuid:" + sampleID,
			"no hyphens": "9b2f1c473e584a0d8c117d64e2a90f35",
		}

		for name, input := range forms {
			t.Run(name, func(t *testing.T) {
				id, err := kernel.UUIDFromString(input)

				require.NoError(t, err)
				assert.Equal(t, sampleID, id.String())
				assert.NoError(t, id.Validate())
			})
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		malformed := []string{
			"",
			"order-42",
			sampleID + "ff",
			"9b2f1c47-3e58-4a0d-8c11",
			"gb2f1c47-3e58-4a0d-8c11-7d64e2a90f35",
		}

		for _, input := range malformed {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, "input %q", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round-trips through the raw representation", func(t *testing.T) {
		original, err := kernel.UUIDFromString(sampleID)
		require.NoError(t, err)

		raw := original.Bytes()
		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects a short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x9b, 0x2f, 0x1c})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects sixteen zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_String(t *testing.T) {
	id := kernel.NewUUID()

	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	assert.Equal(t, id.String(), id.String())
}

func TestUUID_Bytes(t *testing.T) {
	id := kernel.NewUUID()
	raw := id.Bytes()

	assert.IsType(t, uuid.UUID{}, raw)
	assert.Equal(t, id.String(), raw.String())
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("same text parses to equal identifiers", func(t *testing.T) {
		a, _ := kernel.UUIDFromString(sampleID)
		b, _ := kernel.UUIDFromString(sampleID)

		assert.True(t, a.IsEqual(b))
		assert.True(t, b.IsEqual(a))
	})

	t.Run("fresh identifiers are never equal", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})

	t.Run("zero values compare equal to each other only", func(t *testing.T) {
		var a, b kernel.UUID

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed identifier is valid", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("parsed nil UUID fails validation", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

// Validate doubles as the uninitialized-field check on aggregate keys, so a
// struct that was never filled in must fail it.
func TestUUID_AsAggregateKey(t *testing.T) {
	type dispatch struct {
		OrderID kernel.UUID
		RiderID kernel.UUID
	}

	t.Run("populated keys validate", func(t *testing.T) {
		d := dispatch{OrderID: kernel.NewUUID(), RiderID: kernel.NewUUID()}

		assert.NoError(t, d.OrderID.Validate())
		assert.NoError(t, d.RiderID.Validate())
	})

	t.Run("zero-value keys do not", func(t *testing.T) {
		var d dispatch

		assert.Error(t, d.OrderID.Validate())
		assert.Error(t, d.RiderID.Validate())
	})
}

func TestUUID_Immutability(t *testing.T) {
	original := kernel.NewUUID()
	want := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xAA
	}

	// Bytes returns a copy; scribbling on it must not reach the original.
	assert.Equal(t, want, original.String())
	assert.NoError(t, original.Validate())
}
