package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are virtual, slash-separated and relative to the root ("." by default).
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry // cleaned path -> entry
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	mfs := &MemoryFileSystem{entries: make(map[string]*memoryEntry)}
	mfs.entries["."] = &memoryEntry{info: dirInfo(".")}
	return mfs
}

func dirInfo(p string) *memoryFileInfo {
	return &memoryFileInfo{name: path.Base(p), mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true}
}

func clean(p string) string {
	p = strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	if p == "" {
		return "."
	}
	return p
}

// AddFile adds a file, creating parent directories as needed.
func (mfs *MemoryFileSystem) AddFile(filePath, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p := clean(filePath)
	data := []byte(content)
	mfs.entries[p] = &memoryEntry{
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(p),
			size:    int64(len(data)),
			mode:    0644,
			modTime: time.Now(),
		},
	}

	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, exists := mfs.entries[dir]; exists {
			break
		}
		mfs.entries[dir] = &memoryEntry{info: dirInfo(dir)}
	}
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	p := clean(dirPath)
	mfs.entries[p] = &memoryEntry{info: dirInfo(p)}
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[clean(filePath)]
	if !exists {
		return nil, fmt.Errorf("open %s: %w", filePath, fs.ErrNotExist)
	}
	if e.info.isDir {
		return nil, fmt.Errorf("read %s: is a directory", filePath)
	}
	out := make([]byte, len(e.content))
	copy(out, e.content)
	return out, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	dir := clean(dirPath)
	e, exists := mfs.entries[dir]
	if !exists {
		return nil, fmt.Errorf("failed to read directory: open %s: %w", dirPath, fs.ErrNotExist)
	}
	if !e.info.isDir {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dirPath)
	}

	var result []FileInfo
	for p, entry := range mfs.entries {
		if p != "." && path.Dir(p) == dir {
			result = append(result, entry.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// Verify MemoryFileSystem implements the FileSystemProvider interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
