package covenant

// Persistent is implemented by any entity that can be serialized into
// bytes and stored in a KVStore. Marshal and Unmarshal must be
// symmetric.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
