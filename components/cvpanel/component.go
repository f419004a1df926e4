package cvpanel

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/draft"
	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cvform/pkg/session"
)

const (
	actionSave   = "save"
	actionSubmit = "submit"
	actionReset  = "reset"
)

// Component is an http.Handler bound to one session.State. Events are
// serialised by the state's own lock.
type Component struct {
	state  *session.State
	opts   Options
	router chi.Router

	mu    sync.Mutex
	flash flash
}

// flash carries the outcome of the last form post to the page rendered after
// the redirect.
type flash struct {
	notice string
	errors map[string][]string
}

// New builds the component for state.
func New(state *session.State, fns ...OptionFn) (*Component, error) {
	if state == nil {
		return nil, errors.New("cvpanel: state is required")
	}
	opts := NewOptions(fns...)
	opts.BasePath = normalizeBase(opts.BasePath)
	if opts.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("cvpanel: default renderer: %w", err)
		}
		opts.Renderer = renderer
	}

	c := &Component{state: state, opts: opts}
	c.router = c.routes()
	return c, nil
}

func (c *Component) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

func (c *Component) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if c.opts.Guard != nil {
		r.Use(c.guard)
	}

	r.Get("/", c.page)
	r.Get("/cv.json", c.collection)
	r.Get("/sections", c.sections)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	r.Post("/sections/{section}", c.postSection)
	r.Patch("/sections/{section}/fields/{key}", c.patchField)
	r.Post("/panel/toggle", c.togglePanel)
	return r
}

func (c *Component) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := c.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Component) page(w http.ResponseWriter, r *http.Request) {
	view := c.state.View()
	last := c.takeFlash()

	action := c.opts.BasePath
	if action == "/" {
		action = ""
	}
	out, err := c.opts.Renderer.Render(r.Context(), view, render.RenderOptions{
		Errors: render.MergeErrors(render.DraftErrors(view), last.errors),
		Notice: last.notice,
		Theme:  c.opts.Theme,
		Action: action,
	})
	if err != nil {
		c.opts.Logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", c.opts.Renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (c *Component) collection(w http.ResponseWriter, _ *http.Request) {
	data, err := c.state.CollectionJSON()
	if err != nil {
		c.opts.Logger.Error("encode collection", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type sectionsResponse struct {
	Data []model.SectionSchema `json:"data"`
}

func (c *Component) sections(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(sectionsResponse{Data: c.state.Registry().Schemas()})
}

func (c *Component) postSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	schema, err := c.state.Registry().Schema(section)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "cvpanel: invalid form body", http.StatusBadRequest)
		return
	}

	action := strings.TrimSpace(r.PostForm.Get("action"))
	values := make(map[string]string, len(r.PostForm))
	for key, posted := range r.PostForm {
		if key == "action" || len(posted) == 0 {
			continue
		}
		values[key] = posted[0]
	}

	switch action {
	case "", actionSave, actionSubmit:
	case actionReset:
		if err := c.state.Reset(section); err != nil {
			c.writeEventError(w, err)
			return
		}
		c.setFlash(fmt.Sprintf("%s cleared", schema.Title), nil)
		c.redirectHome(w, r)
		return
	default:
		http.Error(w, fmt.Sprintf("cvpanel: unknown action %q", action), http.StatusBadRequest)
		return
	}

	current, err := c.state.Draft(section)
	if err != nil {
		c.writeEventError(w, err)
		return
	}
	if err := c.state.UpdateMany(section, changedValues(current, values)); err != nil {
		c.writeEventError(w, err)
		return
	}
	if action != actionSubmit {
		c.setFlash("Draft saved", nil)
		c.redirectHome(w, r)
		return
	}

	if _, err := c.state.Submit(section); err != nil {
		if !errors.Is(err, model.ErrIncompleteRecord) {
			c.writeEventError(w, err)
			return
		}
		c.setFlash("", render.ErrorsFromEvent(section, err))
		c.redirectHome(w, r)
		return
	}
	c.setFlash(fmt.Sprintf("%s submitted", schema.Title), nil)
	c.redirectHome(w, r)
}

// changedValues drops posted fields that still match an untouched draft
// value, so a browser echoing every input keeps unset fields unset.
func changedValues(current draft.DraftRecord, posted map[string]string) map[string]string {
	out := make(map[string]string, len(posted))
	for key, value := range posted {
		if existing, ok := current.Get(key); ok && !existing.IsSet() && value == existing.String() {
			continue
		}
		out[key] = value
	}
	return out
}

type fieldPatch struct {
	Value *string `json:"value"`
}

func (c *Component) patchField(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	key := chi.URLParam(r, "key")
	if !c.state.Registry().Has(section) {
		http.Error(w, (&model.UnknownSectionError{Section: section}).Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxFormBytes)
	var value string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var patch fieldPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch.Value == nil {
			http.Error(w, `cvpanel: expected {"value": "..."}`, http.StatusBadRequest)
			return
		}
		value = *patch.Value
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "cvpanel: invalid form body", http.StatusBadRequest)
			return
		}
		posted, ok := r.PostForm["value"]
		if !ok || len(posted) == 0 {
			http.Error(w, "cvpanel: missing value", http.StatusBadRequest)
			return
		}
		value = posted[0]
	}

	if err := c.state.Update(section, key, value); err != nil {
		c.writeEventError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) togglePanel(w http.ResponseWriter, r *http.Request) {
	c.state.TogglePanel()
	c.redirectHome(w, r)
}

func (c *Component) writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownSection):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrUnknownFieldKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		c.opts.Logger.Error("apply event", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (c *Component) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, link(c.opts.BasePath, "/"), http.StatusSeeOther)
}

func (c *Component) setFlash(notice string, errs map[string][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flash = flash{notice: notice, errors: errs}
}

func (c *Component) takeFlash() flash {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := c.flash
	c.flash = flash{}
	return last
}
