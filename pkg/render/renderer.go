package render

import (
	"context"

	"github.com/goliatone/go-cvform/pkg/session"
)

// Renderer converts a session View into a byte representation (HTML page,
// terminal text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view session.View, options RenderOptions) ([]byte, error)
}
