package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/whdeploy/internal/checksum"
	"github.com/vvka-141/whdeploy/internal/files/filesystem"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// Scanner discovers SQL templates in a single directory (no recursion).
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
	pattern    string
}

// NewScanner creates a new template scanner with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a new template scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
		pattern:    whdeploy.TemplatePattern,
	}
}

// ScanTemplates returns the files in dir whose names match the template
// pattern, sorted by path. Hidden files and directories are skipped, as a
// shell glob would. A missing directory yields no templates.
func (s *Scanner) ScanTemplates(dir string) ([]whdeploy.TemplateFile, error) {
	infos, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list templates in %s: %w", dir, err)
	}

	var templates []whdeploy.TemplateFile
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		matched, err := filepath.Match(s.pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid template pattern %q: %w", s.pattern, err)
		}
		if !matched {
			continue
		}

		tf, err := s.loadTemplate(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tf)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Path < templates[j].Path
	})
	return templates, nil
}

// loadTemplate reads a template and attaches its identity and checksum.
func (s *Scanner) loadTemplate(path string) (whdeploy.TemplateFile, error) {
	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return whdeploy.TemplateFile{}, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	return whdeploy.TemplateFile{
		Path:     path,
		Name:     filepath.Base(path),
		ID:       GenerateID(path).String(),
		Checksum: s.calculator.Calculate(content),
		Content:  string(content),
	}, nil
}

// Verify Scanner implements the TemplateScanner interface at compile time
var _ whdeploy.TemplateScanner = (*Scanner)(nil)
