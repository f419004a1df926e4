// Package cvform wires the default section registry, application state and
// renderers together for callers that do not need to assemble them by hand.
package cvform

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-cvform/pkg/openapi"
	"github.com/goliatone/go-cvform/pkg/registry"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/text"
	"github.com/goliatone/go-cvform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cvform/pkg/session"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// State aliases session.State, the owner of every draft, the collection and
// the panel.
type State = session.State

// View aliases the read-only snapshot renderers consume.
type View = session.View

// DefaultRegistry returns the built-in general, education and experience
// sections.
func DefaultRegistry() *registry.Registry {
	return registry.Default()
}

// NewState creates application state over the default registry.
func NewState(options ...session.Option) (*State, error) {
	return session.New(registry.Default(), options...)
}

// RegistryFromDir loads every schema file under dir.
func RegistryFromDir(dir string, options ...registry.Option) (*registry.Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cvform: schemas: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cvform: schemas: %s is not a directory", dir)
	}
	return registry.LoadFS(os.DirFS(dir), options...)
}

// RegistryFromOpenAPI derives sections from the component schemas of an
// OpenAPI document at location.
func RegistryFromOpenAPI(ctx context.Context, location string, options ...openapi.LoaderOption) (*registry.Registry, error) {
	schemas, err := openapi.Load(ctx, location, options...)
	if err != nil {
		return nil, err
	}
	return registry.New(schemas)
}

// NewRenderers registers the vanilla HTML renderer, which answers an empty
// name, and the text renderer.
func NewRenderers(htmlOptions []vanilla.Option, textOptions []text.Option) (*render.Registry, error) {
	html, err := vanilla.New(htmlOptions...)
	if err != nil {
		return nil, fmt.Errorf("cvform: vanilla renderer: %w", err)
	}
	return render.NewRegistry(html, text.New(textOptions...))
}

// RenderHTML renders the full page for state with the vanilla renderer,
// attaching the advisory validation messages of every draft.
func RenderHTML(ctx context.Context, state *State, options ...vanilla.Option) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("cvform: state is nil")
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("cvform: vanilla renderer: %w", err)
	}
	view := state.View()
	return renderer.Render(ctx, view, render.RenderOptions{Errors: render.DraftErrors(view)})
}
