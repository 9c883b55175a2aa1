package app

import (
	"context"
	"io"

	"dmpublish/internal/dailymotion"
	"dmpublish/internal/storage"
	"dmpublish/pkg/config"
	"dmpublish/pkg/templates"
)

// VideoAPI is the subset of the Dailymotion client used by the pipeline and
// the CLI.
type VideoAPI interface {
	RequestAccessToken(ctx context.Context) (string, error)
	RequestAccessTokenManageVideosScope(ctx context.Context) (string, error)
	GenerateUploadURL(ctx context.Context) (string, error)
	PostVideo(ctx context.Context, filename string, video io.Reader) (string, error)
	CreateVideo(ctx context.Context) (string, error)
	PublishVideo(ctx context.Context, metadata dailymotion.Metadata) (dailymotion.Object, error)
	GetVideo(ctx context.Context, videoID, fields string) (dailymotion.Object, error)
	VideoURL(ctx context.Context) (string, error)
	GetAuthenticatedUserVideos(ctx context.Context, fields string) (dailymotion.Object, error)
	GetAuthenticatedUserInfo(ctx context.Context, fields string) (dailymotion.Object, error)
	DeleteVideo(ctx context.Context, videoID string) (dailymotion.Object, error)
}

type Service struct {
	cfg       *config.Config
	api       VideoAPI
	storage   *storage.Resolver
	templates *templates.Templates
}

type ServiceOptions struct {
	Config    *config.Config
	API       VideoAPI
	Storage   *storage.Resolver
	Templates *templates.Templates
}

func NewService(opts ServiceOptions) *Service {
	tmpl := opts.Templates
	if tmpl == nil {
		tmpl = templates.Default()
	}

	return &Service{
		cfg:       opts.Config,
		api:       opts.API,
		storage:   opts.Storage,
		templates: tmpl,
	}
}

func (s *Service) Config() *config.Config          { return s.cfg }
func (s *Service) API() VideoAPI                   { return s.api }
func (s *Service) Storage() *storage.Resolver      { return s.storage }
func (s *Service) Templates() *templates.Templates { return s.templates }

func (s *Service) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}
