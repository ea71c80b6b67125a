package unprompted

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Filesystem storage error messages
const (
	ErrMsgInvalidStorageRoot = "storage root directory is empty"
	ErrMsgCreateStorageDir   = "failed to create storage directory"
	ErrMsgReadTemplateFile   = "failed to read template file"
	ErrMsgWriteTemplateFile  = "failed to write template file"
	ErrMsgListTemplateFiles  = "failed to list template files"
)

// FilesystemStore keeps each template as <root>/<name>.prompt
type FilesystemStore struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// NewFilesystemStore creates a store rooted at root, creating the
// directory if it does not exist
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, NewStorageError(ErrMsgInvalidStorageRoot, nil)
	}
	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, NewStorageError(ErrMsgCreateStorageDir, err)
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the storage directory
func (s *FilesystemStore) Root() string {
	return s.root
}

func (s *FilesystemStore) path(name string) string {
	return filepath.Join(s.root, name+DocumentFileExtension)
}

// Get reads the named template file
func (s *FilesystemStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	path := s.path(name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewTemplateNotFoundError(name)
	}
	if err != nil {
		return nil, NewStorageError(ErrMsgReadTemplateFile, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewStorageError(ErrMsgReadTemplateFile, err)
	}

	return &StoredTemplate{
		Name:      name,
		Source:    string(data),
		UpdatedAt: info.ModTime(),
	}, nil
}

// Put writes the template file, replacing any previous content. The file
// is written to a temporary name first and renamed into place.
func (s *FilesystemStore) Put(ctx context.Context, name string, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateTemplateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(source), FilesystemFilePermissions); err != nil {
		return NewStorageError(ErrMsgWriteTemplateFile, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return NewStorageError(ErrMsgWriteTemplateFile, err)
	}
	return nil
}

// Delete removes the template file
func (s *FilesystemStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateTemplateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return NewTemplateNotFoundError(name)
	}
	if err != nil {
		return NewStorageError(ErrMsgWriteTemplateFile, err)
	}
	return nil
}

// List returns the names of all .prompt files in the root directory
func (s *FilesystemStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, NewStorageError(ErrMsgListTemplateFiles, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocumentFileExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), DocumentFileExtension))
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed. Files are left on disk.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
