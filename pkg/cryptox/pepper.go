package cryptox

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PepperLength is the number of random bytes in a generated pepper.
const PepperLength = 32

// LoadOrGeneratePepper reads the pepper stored at path. When the file does not
// exist a new random pepper is generated and written with 0600 permissions.
func LoadOrGeneratePepper(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("cryptox: pepper path is empty")
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		pepper := bytes.TrimSpace(raw)
		if len(pepper) == 0 {
			return nil, fmt.Errorf("cryptox: pepper file %q is empty", path)
		}
		return pepper, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read pepper: %w", err)
	}

	// Generate a new pepper and save it to the file
	buf := make([]byte, PepperLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	pepper := []byte(base64.RawURLEncoding.EncodeToString(buf))

	if err := os.WriteFile(path, pepper, 0600); err != nil {
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return pepper, nil
}
