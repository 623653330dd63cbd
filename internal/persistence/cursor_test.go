package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
)

func TestCursorRoundTrip(t *testing.T) {
	original := &domain.Cursor{
		RecordedAt: time.Date(2024, time.March, 5, 9, 30, 15, 123456789, time.UTC),
		ID:         "entry-42",
	}

	token := EncodeCursor(original)
	require.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	require.True(t, original.RecordedAt.Equal(decoded.RecordedAt))
	require.Equal(t, original.ID, decoded.ID)
}

func TestEncodeCursorNil(t *testing.T) {
	require.Empty(t, EncodeCursor(nil))
}

func TestDecodeCursorEmpty(t *testing.T) {
	decoded, err := DecodeCursor("  ")
	require.NoError(t, err)
	require.Nil(t, decoded)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("%%%not-base64%%%")
	require.Error(t, err)

	// Valid base64 but missing the separator.
	_, err = DecodeCursor("bm9zZXBhcmF0b3I=")
	require.Error(t, err)
}
