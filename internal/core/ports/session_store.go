package ports

import (
	"context"
	"time"
)

// SessionRecord is the pair of entries persisted per session: the opaque
// bearer token and the serialized identity. Both are written together and
// cleared together; a store that finds only one of the two must treat the
// session as absent and clear both.
type SessionRecord struct {
	Token    string
	Identity []byte
}

// SessionStore persists session records under an opaque session id.
type SessionStore interface {
	// Save writes both entries of the record with the given lifetime,
	// replacing any prior record under the id.
	Save(ctx context.Context, sid string, rec SessionRecord, ttl time.Duration) error

	// Find reads both entries. It returns domain.ErrSessionNotFound when the
	// record is absent or incomplete.
	Find(ctx context.Context, sid string) (SessionRecord, error)

	// Delete removes both entries. Deleting an absent record is not an error.
	Delete(ctx context.Context, sid string) error
}
