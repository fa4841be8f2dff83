package scanner

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NamespaceTemplateIdentity is the UUID namespace for template identities,
// derived from a fixed string with the URL namespace.
var NamespaceTemplateIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("whdeploy/template-identity/v1"))

// GenerateID returns a deterministic UUID v5 for a template path.
//
// Path Normalization:
//  1. Forward slashes
//  2. Lowercase (case-insensitive identity)
//  3. No leading "./"
//
// The same template keeps the same ID across runs and machines, so log lines
// from different runs can be correlated.
func GenerateID(path string) uuid.UUID {
	return uuid.NewSHA1(NamespaceTemplateIdentity, []byte(normalizePath(path)))
}

func normalizePath(path string) string {
	normalized := strings.ToLower(filepath.ToSlash(path))
	return strings.TrimPrefix(normalized, "./")
}
