package storage

import "fmt"

// Open creates a Store based on the backend name.
//
// Supported backends:
//
//	"json"   - users.json, items.json and bills.json in dataDir (default)
//	"memory" - in-memory (ephemeral, for demos and tests)
func Open(backend, dataDir string) (*Store, error) {
	switch backend {
	case "json", "":
		return NewJSONFileStore(dataDir)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, memory)", backend)
	}
}
