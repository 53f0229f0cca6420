package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Payload is an archived provider response, kept for replay and debugging of sync runs.
type Payload struct {
	ID            string
	Provider      string
	Endpoint      string
	CompetitionID string
	Body          []byte
	ContentHash   string
	FetchedAt     time.Time
}

// HashBody returns the hex sha256 used to deduplicate identical payloads.
func HashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
