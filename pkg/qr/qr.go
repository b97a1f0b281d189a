// Package qr produces and parses the scannable code payloads used for
// attendance check-in.
package qr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrBadFormat is returned for any payload that does not match
// the expected "user:<id>-event:<id>" shape.
var ErrBadFormat = errors.New("code payload does not match user:<id>-event:<id>")

var payloadPattern = regexp.MustCompile(`^user:(\d+)-event:(\d+)$`)

const imageSize = 256

// EncodePayload builds the string embedded into the QR image.
func EncodePayload(userID, eventID int64) string {
	return fmt.Sprintf("user:%d-event:%d", userID, eventID)
}

// ImageFilename returns the deterministic artifact name for a
// (user, event) pair.
func ImageFilename(userID, eventID int64) string {
	return fmt.Sprintf("user%d_event%d.png", userID, eventID)
}

// ParsePayload extracts the user and event ids from a scanned payload.
// Every failure mode collapses to ErrBadFormat: a scanner feeding us
// garbage is not an internal fault.
func ParsePayload(raw string) (userID, eventID int64, err error) {
	m := payloadPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, ErrBadFormat
	}

	userID, err = strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, ErrBadFormat
	}

	eventID, err = strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, ErrBadFormat
	}

	return userID, eventID, nil
}

// Render encodes the payload into a PNG image.
func Render(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
