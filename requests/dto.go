package requests

import (
	"encoding/json"

	"github.com/brettbedarf/ramvfs"
)

// NodeRequestDTO is the JSON representation of [ramvfs.NodeRequest]
type NodeRequestDTO struct {
	Path  string                       `json:"path"`
	Type  ramvfs.NodeCreateRequestType `json:"type"`
	UUID  *string                      `json:"uuid,omitempty"`  // Optional id to correlate logs (Default random)
	Perms *string                      `json:"perms,omitempty"` // i.e. "rw-" (Default by kind)
}

// FileRequestDTO is the JSON representation of [ramvfs.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO
	Source json.RawMessage `json:"source,omitempty"`
}

type DirRequestDTO struct {
	NodeRequestDTO
}

// SourceConfigDTO is the JSON representation of static source fields
//
// Additional fields depend on the "type" value:
//
// Ex. For type="http" (see [adapters.HTTPSource]):
//
//	URL      string            `json:"url"`
//	Headers  map\[string\]string `json:"headers,omitempty"`
//	MaxBytes int64             `json:"max_bytes,omitempty"`
//
// See the adapters package for the fields each built-in source accepts.
type SourceConfigDTO struct {
	Type string `json:"type"`
}
