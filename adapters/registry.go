// Package adapters builds the content sources that seed file definitions:
// a type keyed registry of [ramvfs.ProviderFactory] plus the builtin types.
package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/brettbedarf/ramvfs"
)

// ErrUnknownSource is returned for a source whose "type" has no factory
var ErrUnknownSource = errors.New("unknown source type")

// Registry maps source "type" keys to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ramvfs.ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ramvfs.ProviderFactory)}
}

// Register ties a JSON-raw factory to a "type" key. The first registration
// for a key wins; later ones are ignored.
func (r *Registry) Register(sourceType string, factory ramvfs.ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[sourceType]; exists {
		return
	}
	r.factories[sourceType] = factory
}

// GetFactory returns the factory registered for sourceType
func (r *Registry) GetFactory(sourceType string) (ramvfs.ProviderFactory, error) {
	r.mu.RLock()
	f, ok := r.factories[sourceType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, sourceType)
	}
	return f, nil
}

// NewProvider picks the right factory based on the "type" field of raw and
// builds the provider from the full raw config.
func (r *Registry) NewProvider(raw []byte) (ramvfs.ContentProvider, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode source: %w", err)
	}
	if meta.Type == "" {
		return nil, fmt.Errorf("%w: missing \"type\" field", ErrUnknownSource)
	}
	f, err := r.GetFactory(meta.Type)
	if err != nil {
		return nil, err
	}
	return f(raw)
}
