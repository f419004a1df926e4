package main

import (
	"context"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	cvform "github.com/goliatone/go-cvform"
	"github.com/goliatone/go-cvform/internal/config"
	"github.com/goliatone/go-cvform/pkg/openapi"
	"github.com/goliatone/go-cvform/pkg/registry"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/text"
	"github.com/goliatone/go-cvform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/toggle"
)

const remoteTimeout = 15 * time.Second

func buildRegistry(ctx context.Context, cfg config.Config) (*registry.Registry, error) {
	switch {
	case cfg.OpenAPI != "":
		var opts []openapi.LoaderOption
		if cfg.AllowRemote {
			opts = append(opts, openapi.WithHTTP(remoteTimeout))
		}
		if cfg.ValidateSpec {
			opts = append(opts, openapi.WithParseOptions(openapi.WithValidation()))
		}
		return cvform.RegistryFromOpenAPI(ctx, cfg.OpenAPI, opts...)
	case cfg.Schemas != "":
		return cvform.RegistryFromDir(cfg.Schemas)
	default:
		return cvform.DefaultRegistry(), nil
	}
}

func buildState(ctx context.Context, cfg config.Config, logger *zap.Logger) (*session.State, error) {
	reg, err := buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}
	content, err := toggle.Parse(cfg.Form.Toggle)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithToggleContent(content),
	}
	if cfg.Form.PanelClosed {
		opts = append(opts, session.WithPanelClosed())
	}
	if cfg.Form.RequireComplete {
		opts = append(opts, session.WithRequireComplete())
	}

	logger.Debug("state ready",
		zap.Strings("sections", reg.Sections()),
		zap.String("toggle", string(content.Kind())),
	)
	return session.New(reg, opts...)
}

// buildTheme resolves the inline theme from the config, or nil when none is
// declared.
func buildTheme(cfg config.Config) (*theme.RendererConfig, error) {
	manifest := cfg.Theme.Manifest()
	if manifest == nil {
		return nil, nil
	}
	selector, err := render.NewManifestSelector(manifest.Name, cfg.Theme.Variant, manifest)
	if err != nil {
		return nil, err
	}
	return render.ResolveTheme(selector, "", "", nil)
}

func vanillaOptions(cfg config.Config) []vanilla.Option {
	opts := []vanilla.Option{
		vanilla.WithTitle(cfg.Render.Title),
		vanilla.WithTemplatesDir(cfg.Render.TemplatesDir),
		vanilla.WithEngine(cfg.Render.Engine),
	}
	for _, href := range cfg.Render.Stylesheets {
		opts = append(opts, vanilla.WithStylesheet(href))
	}
	return opts
}

func textOptions(cfg config.Config, drafts bool) ([]text.Option, error) {
	format, err := text.ParseFormat(cfg.Render.TextFormat)
	if err != nil {
		return nil, err
	}
	opts := []text.Option{text.WithFormat(format)}
	if drafts {
		opts = append(opts, text.WithDrafts())
	}
	return opts, nil
}

// buildRenderer returns the renderer named by cfg.Render.Renderer.
func buildRenderer(cfg config.Config, drafts bool) (render.Renderer, error) {
	textOpts, err := textOptions(cfg, drafts)
	if err != nil {
		return nil, err
	}
	renderers, err := cvform.NewRenderers(vanillaOptions(cfg), textOpts)
	if err != nil {
		return nil, err
	}
	return renderers.Lookup(cfg.Render.Renderer)
}
