package app

import (
	"context"

	"dmpublish/internal/dailymotion"
	"dmpublish/internal/storage"
	"dmpublish/pkg/config"
	"dmpublish/pkg/httputil"
	"dmpublish/pkg/templates"
)

// BuildService wires the Dailymotion client, video storage and metadata
// templates from cfg.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient, err := httputil.NewClient(httputil.ClientConfig{
		Timeout:  cfg.API.Timeout,
		ProxyURL: cfg.ProxyURL,
	})
	if err != nil {
		return nil, err
	}

	client := dailymotion.NewClient(dailymotion.Config{
		Credentials: dailymotion.Credentials{
			Username:  cfg.Username,
			Password:  cfg.Password,
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
		},
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
	})

	tmpl, err := templates.LoadFrom(cfg.Templates.Path)
	if err != nil {
		return nil, err
	}

	return NewService(ServiceOptions{
		Config:    cfg,
		API:       client,
		Storage:   storage.NewResolver(storage.NewLocalStorage()),
		Templates: tmpl,
	}), nil
}
