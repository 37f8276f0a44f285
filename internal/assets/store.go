// Package assets resolves the fixed binary inputs of the renderer: the
// receipt template and the signature image, keyed by logical name.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Logical asset keys, relative to the configured base (directory or bucket).
const (
	TemplateKey  = "templates/recu_fiscal.pdf"
	SignatureKey = "assets/signature.png"
)

// Store is a read-only byte source for the renderer's fixed assets.
type Store interface {
	// Template returns the base receipt document.
	Template(ctx context.Context) ([]byte, error)

	// Signature returns the signature image.
	Signature(ctx context.Context) ([]byte, error)
}

// FSStore reads assets from the local filesystem.
type FSStore struct {
	baseDir string
}

// NewFSStore creates an FSStore rooted at baseDir.
func NewFSStore(baseDir string) *FSStore {
	return &FSStore{baseDir: baseDir}
}

func (f *FSStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", key, err)
	}
	return data, nil
}

// Template returns the base receipt document.
func (f *FSStore) Template(context.Context) ([]byte, error) {
	return f.read(TemplateKey)
}

// Signature returns the signature image.
func (f *FSStore) Signature(context.Context) ([]byte, error) {
	return f.read(SignatureKey)
}
