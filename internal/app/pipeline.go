package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dmpublish/internal/dailymotion"
	"dmpublish/internal/progress"
	"dmpublish/pkg/templates"
)

type Pipeline struct {
	service *Service
	now     func() time.Time
}

// PublishRequest describes one upload. Empty Title, Description and Tags
// are rendered from the metadata templates; an empty Channel falls back to
// the configured one.
type PublishRequest struct {
	Source      string
	Title       string
	Description string
	Tags        []string
	Channel     string
	Private     bool
	Quiet       bool
	Index       int
}

type PublishResult struct {
	Source   string             `json:"source" yaml:"source"`
	VideoID  string             `json:"id" yaml:"id"`
	URL      string             `json:"url,omitempty" yaml:"url,omitempty"`
	Response dailymotion.Object `json:"response,omitempty" yaml:"response,omitempty"`
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service, now: time.Now}
}

// Authenticate requests an access token. manageVideos asks for the
// manage_videos scope needed to delete videos.
func (pipeline *Pipeline) Authenticate(ctx context.Context, manageVideos bool) (string, error) {
	api := pipeline.service.API()
	if manageVideos {
		return api.RequestAccessTokenManageVideosScope(ctx)
	}
	return api.RequestAccessToken(ctx)
}

// Publish uploads a single video and publishes it. Authenticate must have
// succeeded before.
func (pipeline *Pipeline) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	api := pipeline.service.API()

	video, err := pipeline.service.Storage().Open(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = video.Close() }()

	metadata, err := pipeline.metadata(req, templates.NewParams(video.Name, req.Index, pipeline.now()))
	if err != nil {
		return nil, err
	}

	slog.Info("Requesting upload URL...", "video", video.Name)
	if _, err := api.GenerateUploadURL(ctx); err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	tracker := progress.NewTracker(video.Name, video.Size, req.Quiet)
	_, err = api.PostVideo(ctx, video.Name, tracker.Wrap(video))
	summary := tracker.Finish()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", video.Name, err)
	}
	slog.Info("Uploaded", "video", video.Name, "bytes", summary.Bytes, "elapsed", summary.Elapsed.Round(time.Millisecond))

	videoID, err := api.CreateVideo(ctx)
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	slog.Info("Publishing...", "id", videoID, "title", metadata["title"])
	response, err := api.PublishVideo(ctx, metadata)
	if err != nil {
		return nil, fmt.Errorf("publish video %s: %w", videoID, err)
	}

	return &PublishResult{
		Source:   req.Source,
		VideoID:  videoID,
		URL:      pipeline.lookupURL(ctx, videoID),
		Response: response,
	}, nil
}

// PublishAll expands directories and gs:// prefixes, then publishes each
// video in order. It stops at the first failure and returns the results
// collected so far.
func (pipeline *Pipeline) PublishAll(ctx context.Context, refs []string, req PublishRequest) ([]*PublishResult, error) {
	sources, err := pipeline.service.Storage().Expand(ctx, refs)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no videos found in %s", strings.Join(refs, ", "))
	}

	results := make([]*PublishResult, 0, len(sources))
	for i, source := range sources {
		item := req
		item.Source = source
		item.Index = i + 1

		result, err := pipeline.Publish(ctx, item)
		if err != nil {
			return results, fmt.Errorf("%s: %w", source, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// lookupURL fetches the public URL of a freshly published video. A failed
// lookup leaves the URL empty.
func (pipeline *Pipeline) lookupURL(ctx context.Context, videoID string) string {
	video, err := pipeline.service.API().GetVideo(ctx, videoID, "url")
	if err != nil {
		slog.Warn("Failed to look up video URL", "id", videoID, "error", err)
		return ""
	}
	return video.String("url")
}

func (pipeline *Pipeline) metadata(req PublishRequest, params templates.Params) (dailymotion.Metadata, error) {
	cfg := pipeline.service.Config()
	tmpl := pipeline.service.Templates()

	title := req.Title
	if title == "" {
		rendered, err := tmpl.RenderTitle(params)
		if err != nil {
			return nil, err
		}
		title = rendered
	}

	description := req.Description
	if description == "" {
		rendered, err := tmpl.RenderDescription(params)
		if err != nil {
			return nil, err
		}
		description = rendered
	}

	tags := req.Tags
	if len(tags) == 0 {
		rendered, err := tmpl.RenderTags(params)
		if err != nil {
			return nil, err
		}
		tags = rendered
	}
	if len(tags) == 0 {
		tags = cfg.Publish.Tags
	}

	channel := req.Channel
	if channel == "" {
		channel = cfg.Publish.Channel
	}

	metadata := dailymotion.Metadata{
		"title":   title,
		"channel": channel,
	}
	if description != "" {
		metadata["description"] = description
	}
	if len(tags) > 0 {
		metadata["tags"] = strings.Join(tags, ",")
	}
	if req.Private || cfg.Publish.Private {
		metadata["private"] = "true"
	}

	return metadata, nil
}
