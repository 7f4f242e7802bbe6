package common

import (
	"crypto/sha256"
	"sync"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
)

const clientIdentifierApp = "aipo"

var (
	clientIdentifier     uuid.UUID
	clientIdentifierOnce sync.Once
)

// GetClientIdentifier returns a UUID that uniquely identifies this system.
// The machine ID is hashed with the application name so the raw hardware
// ID never leaves the machine.
func GetClientIdentifier() uuid.UUID {
	clientIdentifierOnce.Do(func() {
		id, err := machineid.ProtectedID(clientIdentifierApp)
		if err != nil {
			// Fallback to a random ephemeral UUID if machine ID cannot be obtained
			clientIdentifier = uuid.New()
			return
		}

		hash := sha256.Sum256([]byte(id))
		clientIdentifier = uuid.UUID(hash[:16])
	})
	return clientIdentifier
}
