package cvpanel

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-cvform/pkg/session"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Mounter is implemented by routers that delegate a whole subtree, such as
// chi.Router. RegisterRoutes prefers it over Handle.
type Mounter interface {
	Mount(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the component for state under basePath on mux and
// returns the registered pattern.
func RegisterRoutes(mux Mux, basePath string, state *session.State, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("cvpanel: missing mux")
	}
	base := normalizeBase(basePath)
	component, err := New(state, append(fns, WithBasePath(base))...)
	if err != nil {
		return "", err
	}

	if mounter, ok := mux.(Mounter); ok {
		var handler http.Handler = component
		if base != "/" {
			handler = http.StripPrefix(base, component)
		}
		mounter.Mount(base, handler)
		return base, nil
	}

	if base == "/" {
		mux.Handle("/", component)
		return "/", nil
	}
	pattern := base + "/"
	mux.Handle(pattern, http.StripPrefix(base, component))
	return pattern, nil
}

// normalizeBase returns "/" or a path with a leading and no trailing slash.
func normalizeBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

// link joins the mount base with a component-relative path.
func link(base, path string) string {
	if base == "/" || base == "" {
		return path
	}
	return base + path
}
