package storage

// Store is the persistence collaborator. The entire deck collection is
// kept as one serialized record under one well-known location; there is
// no versioning and no partial update.
type Store interface {
	// Read returns the persisted record. The second return is false
	// when nothing has been persisted yet, which is not an error.
	Read() ([]byte, bool, error)

	// Write replaces the persisted record.
	Write(data []byte) error
}
