package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const eventIDPrefix = "evt"

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// newEventID returns "evt-" plus 8 lowercase base32 chars (40 random bits).
func newEventID() (string, error) {
	return newRandomID(eventIDPrefix)
}

func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return prefix + "-" + strings.ToLower(idEncoding.EncodeToString(b[:])), nil
}
