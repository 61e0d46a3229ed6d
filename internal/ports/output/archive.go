// Package output defines the secondary/driven ports of the application.
package output

import (
	"context"

	"github.com/jobrunner/nimbus/internal/domain"
)

// ArchiveLister defines the secondary port for archive discovery.
type ArchiveLister interface {
	// List returns the full object keys under the given prefix, ordered by
	// name. An empty slice means no objects exist for that prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ScanFetcher defines the secondary port for downloading an archived scan.
type ScanFetcher interface {
	// Fetch downloads the referenced object to local storage. Ownership of
	// the returned artifact, including deletion, passes to the caller; the
	// fetcher does not clean up, not even a partially written file on
	// failure.
	Fetch(ctx context.Context, ref domain.ScanReference) (domain.LocalArtifact, error)
}

// ScanLoader defines the secondary port for decoding a downloaded scan.
type ScanLoader interface {
	// Load opens a local dataset file and returns its named 2-D bands plus
	// string metadata attributes.
	Load(path string) (*domain.Scan, error)
}

// ArchiveBackend represents the type of archive backend.
type ArchiveBackend string

const (
	ArchiveBackendS3    ArchiveBackend = "s3"
	ArchiveBackendAzure ArchiveBackend = "azure"
)
