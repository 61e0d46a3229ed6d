// Package fetch downloads archived scans over HTTPS.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jobrunner/nimbus/internal/domain"
)

// HTTPFetcher implements ScanFetcher using plain HTTPS against the
// archive's virtual-hosted-style endpoints.
type HTTPFetcher struct {
	client     *http.Client
	domain     string
	scratchDir string
}

// Config holds fetcher configuration.
type Config struct {
	// Domain is the archive domain; objects are addressed as
	// https://{satellite}.{domain}/{object-path}. This URL shape is a
	// format contract with the archive: a change to its addressing scheme
	// breaks fetching without any error at this layer.
	Domain     string
	Timeout    time.Duration
	ScratchDir string // empty: system temp dir
}

// NewHTTPFetcher creates a new HTTPS scan fetcher.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	return &HTTPFetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		domain:     cfg.Domain,
		scratchDir: cfg.ScratchDir,
	}
}

// URL returns the HTTPS address for a scan reference.
func (f *HTTPFetcher) URL(ref domain.ScanReference) string {
	return "https://" + ref.Satellite + "." + f.domain + "/" + ref.ObjectPath()
}

// Fetch downloads the referenced object into a freshly created scratch
// directory, so concurrent requests never collide on a shared basename.
// There is no retry and no content-length or checksum validation; a
// truncated body delivered with a 200 goes undetected. A partially written
// file is left in place on failure; only a successful fetch hands the
// caller an artifact to remove.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref domain.ScanReference) (domain.LocalArtifact, error) {
	if ref.Path == "" {
		return domain.LocalArtifact{}, &domain.FetchError{Err: fmt.Errorf("empty object path: %w", domain.ErrInvalidInput)}
	}

	url := f.URL(ref)

	dir, err := os.MkdirTemp(f.scratchDir, "nimbus-scan-")
	if err != nil {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: err}
	}
	dest := filepath.Join(dir, ref.Basename())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	out, err := os.Create(dest) //#nosec G304 -- dest is a controlled scratch path
	if err != nil {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: err}
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return domain.LocalArtifact{}, &domain.FetchError{URL: url, Err: err}
	}

	return domain.LocalArtifact{Path: dest, Dir: dir}, nil
}
