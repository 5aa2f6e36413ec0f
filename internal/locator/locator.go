// Package locator maps namespaces to descriptor documents. A namespace is a
// slash-separated package path ("github.com/acme/dbkit"); the conventional
// document name inside a namespace directory is managed.hcl.
package locator

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the conventional descriptor document name looked up in
// each namespace directory.
const DefaultFileName = "managed.hcl"

// Locator answers whether a namespace carries a descriptor document and where.
type Locator interface {
	Find(namespace string) (path string, ok bool)
}

// FS looks up descriptor documents beneath a fixed set of root directories:
// <root>/<namespace>/<FileName>, first root wins.
type FS struct {
	Roots    []string
	FileName string
}

// NewFS creates a filesystem locator over the given search roots.
func NewFS(roots ...string) *FS {
	return &FS{Roots: roots, FileName: DefaultFileName}
}

// Find returns the path of the namespace's descriptor document, if any root
// carries one.
func (l *FS) Find(namespace string) (string, bool) {
	name := l.FileName
	if name == "" {
		name = DefaultFileName
	}
	for _, root := range l.Roots {
		p := filepath.Join(root, filepath.FromSlash(namespace), name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Map is a fixed namespace → document path mapping, used by tests and hosts
// that assemble their document set up front.
type Map map[string]string

// Find returns the mapped path for the namespace.
func (m Map) Find(namespace string) (string, bool) {
	p, ok := m[namespace]
	return p, ok
}

// FindDocuments recursively collects files under rootPath whose name ends in
// one of the given extensions, in walk order.
func FindDocuments(rootPath string, extensions ...string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
