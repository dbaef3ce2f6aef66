package utils

import (
	"math/rand"
	"strings"
)

// qrSeparator joins the event id and token into the plain-text payload that
// gets rendered as a QR image. Event ids and tokens must not contain it.
const qrSeparator = "|"

// DefaultQRTokenLength gives 62^12 possible tokens, enough to stop casual
// guessing of a shared event code.
const DefaultQRTokenLength = 12

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// EncodeQR builds the "{eventID}|{token}" payload embedded in an event's QR
// image.
func EncodeQR(eventID, token string) string {
	return eventID + qrSeparator + token
}

// DecodeQR splits a scanned payload back into its event id and token.
// Anything that does not split into exactly two non-empty parts reports
// ok=false; malformed input is a normal outcome, not an error.
func DecodeQR(raw string) (eventID, token string, ok bool) {
	parts := strings.Split(raw, qrSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// GenerateQRToken returns a random alphanumeric token of the given length,
// used as the per-event shared secret. Non-positive lengths fall back to
// DefaultQRTokenLength.
func GenerateQRToken(length int) string {
	if length <= 0 {
		length = DefaultQRTokenLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
