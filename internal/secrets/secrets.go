// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads passwords for encrypted PDFs from a directory of
// plain-text files. Each file holds one password: the filename is the base
// name of the PDF it opens and the trimmed contents are the password.
//
// A file named "default" applies to every PDF without a file of its own.
package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/bindshift/internal/logging"
)

// DefaultDir is the directory searched when none is configured.
const DefaultDir = ".secrets"

// defaultKey names the fallback password file.
const defaultKey = "default"

// Passwords maps a PDF base name to its password.
type Passwords map[string]string

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(ctx context.Context, fs afero.Fs, dir string) (Passwords, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Passwords{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Passwords)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			logging.FromContext(ctx).Warn("could not read password file", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// For returns the password for the PDF at path, falling back to the
// default entry. It returns "" when neither exists.
func (p Passwords) For(path string) string {
	if v, ok := p[filepath.Base(path)]; ok {
		return v
	}
	return p[defaultKey]
}

// Names returns the loaded file names in no particular order.
func (p Passwords) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	return names
}
