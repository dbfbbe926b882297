package adapters

import (
	"net/http"
)

type BuiltInSourceType = string

const (
	InlineSourceType BuiltInSourceType = "inline"
	HTTPSourceType   BuiltInSourceType = "http"
)

// RegisterBuiltins registers all built-in sources by default
// or only the specific ones if keys are provided
func RegisterBuiltins(r *Registry, sources ...BuiltInSourceType) {
	if len(sources) == 0 {
		// Include all built-in sources here when adding implementations
		sources = append(sources, InlineSourceType, HTTPSourceType)
	}

	for _, key := range sources {
		switch key {
		case InlineSourceType:
			RegisterInline(r)
		case HTTPSourceType:
			RegisterHTTP(r, http.DefaultClient)
		}
	}
}

// NewDefaultRegistry returns a registry holding every builtin source
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}
