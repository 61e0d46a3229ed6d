package application

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jobrunner/nimbus/internal/domain"
)

// mockLister implements output.ArchiveLister for testing.
type mockLister struct {
	keys    []string
	listErr error
	prefix  string // last prefix requested
}

func (m *mockLister) List(_ context.Context, prefix string) ([]string, error) {
	m.prefix = prefix
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.keys, nil
}

// mockFetcher implements output.ScanFetcher. On success it writes a real
// file into a fresh temp dir so artifact lifetime can be observed.
type mockFetcher struct {
	fetchErr error
	artifact domain.LocalArtifact // last artifact handed out
	fetched  int
}

func (m *mockFetcher) Fetch(_ context.Context, ref domain.ScanReference) (domain.LocalArtifact, error) {
	m.fetched++
	if m.fetchErr != nil {
		return domain.LocalArtifact{}, m.fetchErr
	}

	dir, err := os.MkdirTemp("", "nimbus-test-")
	if err != nil {
		return domain.LocalArtifact{}, err
	}
	path := filepath.Join(dir, ref.Basename())
	if err := os.WriteFile(path, []byte("scan"), 0600); err != nil {
		return domain.LocalArtifact{}, err
	}

	m.artifact = domain.LocalArtifact{Path: path, Dir: dir}
	return m.artifact, nil
}

// artifactExists reports whether the last handed-out artifact is still on
// disk.
func (m *mockFetcher) artifactExists() bool {
	if m.artifact.Path == "" {
		return false
	}
	_, err := os.Stat(m.artifact.Path)
	return err == nil
}

// mockLoader implements output.ScanLoader.
type mockLoader struct {
	scan    *domain.Scan
	loadErr error
}

func (m *mockLoader) Load(_ string) (*domain.Scan, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.scan, nil
}

// mockRenderer implements Renderer.
type mockRenderer struct {
	bandCalls int
	maskCalls int
}

func (m *mockRenderer) BandPNG(_ domain.Grid) ([]byte, error) {
	m.bandCalls++
	return []byte("band-png"), nil
}

func (m *mockRenderer) MaskPNG(_ domain.CloudMask) ([]byte, error) {
	m.maskCalls++
	return []byte("mask-png"), nil
}
