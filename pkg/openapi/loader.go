package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cvform/pkg/model"
)

// LoaderOptions configures where Load reads documents from.
type LoaderOptions struct {
	// FileSystem resolves relative paths. Nil means the OS filesystem.
	FileSystem fs.FS
	// HTTPClient enables http(s) locations. Nil keeps Load offline unless
	// AllowHTTP is set.
	HTTPClient *http.Client
	// AllowHTTP enables http(s) locations with a default client.
	AllowHTTP bool
	// RequestTimeout caps remote fetches made with the default client.
	RequestTimeout time.Duration
	// Parse is forwarded to LoadSections.
	Parse []ParseOption
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem reads paths from files instead of the OS filesystem.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables remote documents fetched through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables remote documents using a default client with timeout.
func WithHTTP(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// WithParseOptions forwards options to LoadSections.
func WithParseOptions(options ...ParseOption) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Parse = append(opts.Parse, options...)
	}
}

// Load reads the document at location (a path or an http(s) URL) and returns
// its sections.
func Load(ctx context.Context, location string, options ...LoaderOption) ([]model.SectionSchema, error) {
	opts := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	data, err := read(ctx, strings.TrimSpace(location), opts)
	if err != nil {
		return nil, err
	}
	sections, err := LoadSections(ctx, data, opts.Parse...)
	if err != nil {
		return nil, fmt.Errorf("%w (source %s)", err, location)
	}
	return sections, nil
}

func read(ctx context.Context, location string, opts LoaderOptions) ([]byte, error) {
	if location == "" {
		return nil, errors.New("openapi: location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return fetch(ctx, u.String(), opts)
	}

	if opts.FileSystem != nil {
		data, err := fs.ReadFile(opts.FileSystem, strings.TrimPrefix(location, "./"))
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}

func fetch(ctx context.Context, location string, opts LoaderOptions) ([]byte, error) {
	client := opts.HTTPClient
	if client == nil {
		if !opts.AllowHTTP {
			return nil, fmt.Errorf("openapi: remote location %s requires WithHTTP or WithHTTPClient", location)
		}
		client = &http.Client{Timeout: opts.RequestTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}
