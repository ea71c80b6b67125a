package unprompted

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// StoredTemplate is a named document held by a TemplateStore
type StoredTemplate struct {
	Name string
	// Source is the full document text, frontmatter included
	Source    string
	UpdatedAt time.Time
}

// Document parses the stored source
func (t *StoredTemplate) Document() (*Document, error) {
	return ParseDocument([]byte(t.Source))
}

// TemplateStore keeps named template documents.
// Implementations must be safe for concurrent use.
type TemplateStore interface {
	// Get returns the named template or an error matching ErrTemplateNotFound.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// Put creates or replaces the named template.
	Put(ctx context.Context, name string, source string) error

	// Delete removes the named template or returns an error matching
	// ErrTemplateNotFound.
	Delete(ctx context.Context, name string) error

	// List returns all template names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases resources. Further calls fail.
	Close() error
}

// LoadPrompt reads the named document from store and returns a Prompt for
// it. The document's frontmatter settings apply before opts.
func LoadPrompt(ctx context.Context, store TemplateStore, name string, opts ...Option) (*Prompt, error) {
	stored, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := stored.Document()
	if err != nil {
		return nil, err
	}
	return doc.NewPrompt(opts...), nil
}

// validateTemplateName rejects names that are empty or could escape a
// storage directory
func validateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewInvalidTemplateNameError(name)
	}
	if strings.Contains(name, "..") {
		return NewInvalidTemplateNameError(name)
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return NewInvalidTemplateNameError(name)
	}
	return nil
}

// StoreDriver opens a TemplateStore from a driver-specific connection string
type StoreDriver interface {
	Open(connectionString string) (TemplateStore, error)
}

// StoreDriverFunc adapts a function to StoreDriver
type StoreDriverFunc func(connectionString string) (TemplateStore, error)

// Open calls f
func (f StoreDriverFunc) Open(connectionString string) (TemplateStore, error) {
	return f(connectionString)
}

// Store driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers = make(map[string]StoreDriver)
)

func init() {
	RegisterStoreDriver(StoreDriverMemory, StoreDriverFunc(func(string) (TemplateStore, error) {
		return NewMemoryStore(), nil
	}))
	RegisterStoreDriver(StoreDriverFilesystem, StoreDriverFunc(func(root string) (TemplateStore, error) {
		return NewFilesystemStore(root)
	}))
	RegisterStoreDriver(StoreDriverPostgres, StoreDriverFunc(func(dsn string) (TemplateStore, error) {
		cfg := DefaultPostgresConfig()
		cfg.ConnectionString = dsn
		return NewPostgresStore(cfg)
	}))
}

// RegisterStoreDriver registers a store driver by name.
// Panics if driver is nil or the name is already taken.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store with the named driver.
//
//	store, err := unprompted.OpenStore("memory", "")
//	store, err := unprompted.OpenStore("filesystem", "./prompts")
//	store, err := unprompted.OpenStore("postgres", "postgres://localhost/db?sslmode=disable")
func OpenStore(driverName, connectionString string) (TemplateStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStoreDrivers returns the registered driver names in ascending order
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
