// Package requests decodes node definition files into create requests and
// applies them to a filesystem.
package requests

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brettbedarf/ramvfs"
	"github.com/brettbedarf/ramvfs/adapters"
)

var ErrInvalidRequest = errors.New("invalid node request")

// Definitions holds decoded requests grouped by kind, each in file order
type Definitions struct {
	Dirs  []*ramvfs.DirCreateRequest
	Files []*ramvfs.FileCreateRequest
}

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (ramvfs.NodeCreateRequestType, error) {
	var meta struct {
		Type ramvfs.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling. The optional
// source is built through reg.
func UnmarshalFileRequest(data []byte, reg *adapters.Registry) (*ramvfs.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	// Convert DTO to core type with defaults applied
	coreNode, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}

	req := &ramvfs.FileCreateRequest{NodeRequest: coreNode}
	if len(dto.Source) > 0 && string(dto.Source) != "null" {
		src, err := reg.NewProvider(dto.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
		req.Source = src
	}
	return req, nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling (no sources)
func UnmarshalDirRequest(data []byte) (*ramvfs.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	coreNode, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}
	return &ramvfs.DirCreateRequest{NodeRequest: coreNode}, nil
}

// UnmarshalDefinitions decodes a JSON array of node definitions
func UnmarshalDefinitions(data []byte, reg *adapters.Registry) (*Definitions, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}

	defs := &Definitions{}
	for i, raw := range raws {
		typ, err := GetNodeType(raw)
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		switch typ {
		case ramvfs.DirNodeType:
			req, err := UnmarshalDirRequest(raw)
			if err != nil {
				return nil, fmt.Errorf("definition %d: %w", i, err)
			}
			defs.Dirs = append(defs.Dirs, req)
		case ramvfs.FileNodeType:
			req, err := UnmarshalFileRequest(raw, reg)
			if err != nil {
				return nil, fmt.Errorf("definition %d: %w", i, err)
			}
			defs.Files = append(defs.Files, req)
		default:
			return nil, fmt.Errorf("definition %d: %w: unknown type %q", i, ErrInvalidRequest, typ)
		}
	}
	return defs, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) (ramvfs.NodeRequest, error) {
	if dto.Path == "" {
		return ramvfs.NodeRequest{}, fmt.Errorf("%w: missing path", ErrInvalidRequest)
	}

	var perms ramvfs.Perm
	if dto.Perms != nil {
		p, err := ParsePerm(*dto.Perms)
		if err != nil {
			return ramvfs.NodeRequest{}, fmt.Errorf("%s: %w", dto.Path, err)
		}
		perms = p
	}

	return ramvfs.NodeRequest{
		Path:  dto.Path,
		Type:  dto.Type,
		UUID:  valueOrDefault(dto.UUID, uuid.New().String()),
		Perms: perms,
	}, nil
}

// ParsePerm parses the "rwx" form rendered by [ramvfs.Perm.String]
func ParsePerm(s string) (ramvfs.Perm, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("%w: perms %q must look like \"rwx\"", ErrInvalidRequest, s)
	}
	bits := [3]struct {
		char byte
		perm ramvfs.Perm
	}{{'r', ramvfs.PermRead}, {'w', ramvfs.PermWrite}, {'x', ramvfs.PermExec}}

	var p ramvfs.Perm
	for i, b := range bits {
		switch s[i] {
		case b.char:
			p |= b.perm
		case '-':
		default:
			return 0, fmt.Errorf("%w: perms %q must look like \"rwx\"", ErrInvalidRequest, s)
		}
	}
	return p, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
