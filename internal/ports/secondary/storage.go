package secondary

import "context"

// StorageChecker defines the secondary port for backend health checks.
type StorageChecker interface {
	// Backend names the storage backend, e.g. "json" or "sqlite".
	Backend() string

	// CheckIntegrity reports problems with the underlying storage.
	// A nil error means the storage is healthy.
	CheckIntegrity(ctx context.Context) error
}
