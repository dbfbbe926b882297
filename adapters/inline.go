package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brettbedarf/ramvfs"
)

// InlineSource carries file content directly in the definition
type InlineSource struct {
	Content  string `json:"content"`
	ReadOnly bool   `json:"readonly,omitempty"`
}

func RegisterInline(r *Registry) {
	r.Register(InlineSourceType, func(raw []byte) (ramvfs.ContentProvider, error) {
		var src InlineSource
		if err := json.Unmarshal(raw, &src); err != nil {
			return nil, fmt.Errorf("decode inline source: %w", err)
		}
		return &InlineProvider{source: src}, nil
	})
}

// InlineProvider implements [ramvfs.ContentProvider] for inline sources
type InlineProvider struct {
	source InlineSource
}

func NewInlineProvider(content string, readOnly bool) *InlineProvider {
	return &InlineProvider{source: InlineSource{Content: content, ReadOnly: readOnly}}
}

func (p *InlineProvider) Content(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(p.source.Content), nil
}

func (p *InlineProvider) ReadOnly() bool {
	return p.source.ReadOnly
}
