package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantUserID  int64
		wantEventID int64
		wantErr     bool
	}{
		{
			name:        "valid payload",
			raw:         "user:1-event:2",
			wantUserID:  1,
			wantEventID: 2,
		},
		{
			name:        "multi digit ids",
			raw:         "user:142-event:9001",
			wantUserID:  142,
			wantEventID: 9001,
		},
		{
			name:    "garbage",
			raw:     "garbage",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "missing event field",
			raw:     "user:1",
			wantErr: true,
		},
		{
			name:    "non numeric user",
			raw:     "user:x-event:2",
			wantErr: true,
		},
		{
			name:    "negative id",
			raw:     "user:-1-event:2",
			wantErr: true,
		},
		{
			name:    "trailing junk",
			raw:     "user:1-event:2-extra",
			wantErr: true,
		},
		{
			name:    "swapped fields",
			raw:     "event:2-user:1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, eventID, err := ParsePayload(tt.raw)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, userID)
			assert.Equal(t, tt.wantEventID, eventID)
		})
	}
}

func TestEncodeParseRoundtrip(t *testing.T) {
	payload := EncodePayload(17, 4)
	assert.Equal(t, "user:17-event:4", payload)

	userID, eventID, err := ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(17), userID)
	assert.Equal(t, int64(4), eventID)
}

func TestImageFilename(t *testing.T) {
	assert.Equal(t, "user3_event11.png", ImageFilename(3, 11))
}

func TestRenderProducesPNG(t *testing.T) {
	png, err := Render(EncodePayload(1, 1))
	require.NoError(t, err)

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	require.Greater(t, len(png), len(pngMagic))
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
