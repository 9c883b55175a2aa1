package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

type secretFetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
	Close() error
}

var newSecretFetcher = func(ctx context.Context, project string) (secretFetcher, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &gcpSecrets{client: client, project: project}, nil
}

type gcpSecrets struct {
	client  *secretmanager.Client
	project string
}

func (s *gcpSecrets) Fetch(ctx context.Context, name string) (string, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.project, name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(resp.GetPayload().GetData())), nil
}

func (s *gcpSecrets) Close() error {
	return s.client.Close()
}

func resolveSecrets(ctx context.Context, cfg *Config) error {
	if cfg.GCPProject == "" || (cfg.Password != "" && cfg.APISecret != "") {
		return nil
	}

	fetcher, err := newSecretFetcher(ctx, cfg.GCPProject)
	if err != nil {
		return err
	}
	defer func() { _ = fetcher.Close() }()

	targets := []struct {
		secret string
		value  *string
	}{
		{passwordSecret, &cfg.Password},
		{apiSecretSecret, &cfg.APISecret},
	}

	for _, target := range targets {
		if *target.value != "" {
			continue
		}

		value, err := fetcher.Fetch(ctx, target.secret)
		if err != nil {
			return err
		}

		slog.Debug("Loaded secret from Secret Manager", "secret", target.secret)
		*target.value = value
	}

	return nil
}
