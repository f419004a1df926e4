package cvpanel

import (
	"net/http"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/render"
)

// GuardFunc may reject a request before it reaches a handler. Returning an
// HTTPError selects the status code; other errors yield 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	// BasePath is the prefix the component is mounted under. Forms and
	// redirects are built from it.
	BasePath string
	// Renderer produces the page for GET /. Defaults to the vanilla renderer.
	Renderer render.Renderer
	// Theme is forwarded to the renderer.
	Theme  *theme.RendererConfig
	Guard  GuardFunc
	Logger *zap.Logger
	// MaxFormBytes caps request bodies of form posts and field updates.
	MaxFormBytes int64
}

type OptionFn func(*Options)

const defaultMaxFormBytes = 1 << 20

func DefaultOptions() Options {
	return Options{
		BasePath:     "/",
		MaxFormBytes: defaultMaxFormBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.MaxFormBytes <= 0 {
		opts.MaxFormBytes = defaultMaxFormBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithMaxFormBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxFormBytes = n
	}
}
