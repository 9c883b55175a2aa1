// Package dailymotion is a client for the Dailymotion REST API. A Client
// holds the credentials of one account plus the state of a single upload:
// request a token, generate an upload URL, post the file, create the video,
// then publish it.
package dailymotion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/sling"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://api.dailymotion.com"
	defaultTimeout = 30 * time.Minute

	manageVideosScope = "manage_videos"
)

type Client struct {
	credentials Credentials
	httpClient  *http.Client
	baseURL     string
	sling       *sling.Sling
	session     session
}

type Config struct {
	Credentials Credentials
	BaseURL     string
	HTTPClient  *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	base := sling.New().
		Client(httpClient).
		Base(baseURL + "/").
		ResponseDecoder(responseDecoder{})

	return &Client{
		credentials: cfg.Credentials,
		httpClient:  httpClient,
		baseURL:     baseURL,
		sling:       base,
	}
}

func (c *Client) RequestAccessToken(ctx context.Context) (string, error) {
	return c.requestToken(ctx)
}

// RequestAccessTokenManageVideosScope requests a token that may also delete
// videos.
func (c *Client) RequestAccessTokenManageVideosScope(ctx context.Context) (string, error) {
	return c.requestToken(ctx, manageVideosScope)
}

func (c *Client) requestToken(ctx context.Context, scopes ...string) (string, error) {
	conf := &oauth2.Config{
		ClientID:     c.credentials.APIKey,
		ClientSecret: c.credentials.APISecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: scopes,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, c.credentials.Username, c.credentials.Password)
	if err != nil {
		return "", fmt.Errorf("request access token: %w", err)
	}

	c.session.token = token
	c.session.accessToken = token.AccessToken
	return token.AccessToken, nil
}

func (c *Client) GenerateUploadURL(ctx context.Context) (string, error) {
	req := c.sling.New().
		Get("file/upload").
		QueryStruct(tokenQuery{AccessToken: c.session.accessToken})

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate upload url: %w", err)
	}

	uploadURL := resp.String("upload_url")
	if uploadURL == "" {
		return "", fmt.Errorf("generate upload url: upload_url: %w", ErrFieldMissing)
	}

	c.session.uploadURL = uploadURL
	return uploadURL, nil
}

// PostVideo streams video to the upload URL as the multipart field "file"
// and returns the remote URL of the uploaded file.
func (c *Client) PostVideo(ctx context.Context, filename string, video io.Reader) (string, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeFilePart(writer, filename, video))
	}()

	req := c.sling.New().
		Post(c.session.uploadURL).
		Body(pr).
		Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(ctx, req)
	_ = pr.Close()
	<-done
	if err != nil {
		return "", fmt.Errorf("post video: %w", err)
	}

	videoURL := resp.String("url")
	if videoURL == "" {
		return "", fmt.Errorf("post video: url: %w", ErrFieldMissing)
	}

	c.session.uploadedVideoURL = videoURL
	return videoURL, nil
}

func writeFilePart(writer *multipart.Writer, filename string, video io.Reader) error {
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return fmt.Errorf("copy video: %w", err)
	}
	return writer.Close()
}

func (c *Client) CreateVideo(ctx context.Context) (string, error) {
	form := url.Values{
		"access_token": {c.session.accessToken},
		"url":          {c.session.uploadedVideoURL},
	}

	resp, err := c.do(ctx, c.sling.New().Post("me/videos").BodyProvider(formBody{form}))
	if err != nil {
		return "", fmt.Errorf("create video: %w", err)
	}

	id := resp.String("id")
	if id == "" {
		return "", fmt.Errorf("create video: id: %w", ErrFieldMissing)
	}

	c.session.videoID = id
	return id, nil
}

// PublishVideo sets metadata on the created video and marks it published.
// The raw API response is returned as is.
func (c *Client) PublishVideo(ctx context.Context, metadata Metadata) (Object, error) {
	form := url.Values{}
	for key, value := range metadata {
		form.Set(key, value)
	}
	form.Set("access_token", c.session.accessToken)
	form.Set("published", "true")

	path := "video/" + c.session.videoID
	resp, err := c.do(ctx, c.sling.New().Post(path).BodyProvider(formBody{form}))
	if err != nil {
		return nil, fmt.Errorf("publish video %s: %w", c.session.videoID, err)
	}

	return resp, nil
}

// GetVideo returns the video's metadata, restricted to fields (comma
// separated) when given. An empty videoID returns nil without a request.
func (c *Client) GetVideo(ctx context.Context, videoID, fields string) (Object, error) {
	if videoID == "" {
		return nil, nil
	}

	req := c.sling.New().
		Get("video/" + videoID).
		QueryStruct(fieldsQuery{Fields: fields})

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}

	return resp, nil
}

// VideoURL returns the public URL of the video created in this session.
// The first successful lookup is memoized for the lifetime of the client.
// ErrNoVideoID means nothing was looked up; any other error means the
// lookup failed.
func (c *Client) VideoURL(ctx context.Context) (string, error) {
	if c.session.videoURL != "" {
		return c.session.videoURL, nil
	}
	if c.session.videoID == "" {
		return "", ErrNoVideoID
	}

	video, err := c.GetVideo(ctx, c.session.videoID, "url")
	if err != nil {
		return "", fmt.Errorf("look up video url: %w", err)
	}

	videoURL := video.String("url")
	if videoURL == "" {
		return "", fmt.Errorf("look up video url: %w", ErrFieldMissing)
	}

	c.session.videoURL = videoURL
	return videoURL, nil
}

// GetAuthenticatedUserVideos lists the account's videos as the API pages
// them (page, limit, total, has_more, list).
func (c *Client) GetAuthenticatedUserVideos(ctx context.Context, fields string) (Object, error) {
	req := c.sling.New().
		Get("me/videos").
		QueryStruct(fieldsQuery{Fields: fields})

	resp, err := c.do(ctx, c.authorized(req))
	if err != nil {
		return nil, fmt.Errorf("get user videos: %w", err)
	}
	return resp, nil
}

func (c *Client) GetAuthenticatedUserInfo(ctx context.Context, fields string) (Object, error) {
	// The API serves the bare profile on /me/ and a field selection on /me.
	req := c.sling.New().Get("me/")
	if fields != "" {
		req = c.sling.New().
			Get("me").
			QueryStruct(fieldsQuery{Fields: fields})
	}

	resp, err := c.do(ctx, c.authorized(req))
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}
	return resp, nil
}

// DeleteVideo removes a video. It needs a token with the manage_videos
// scope. An empty videoID returns nil without a request.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) (Object, error) {
	if videoID == "" {
		return nil, nil
	}

	resp, err := c.do(ctx, c.authorized(c.sling.New().Delete("me/videos/"+videoID)))
	if err != nil {
		return nil, fmt.Errorf("delete video %s: %w", videoID, err)
	}
	return resp, nil
}

func (c *Client) authorized(s *sling.Sling) *sling.Sling {
	return s.Set("Authorization", "Bearer "+c.session.accessToken)
}

func (c *Client) do(ctx context.Context, s *sling.Sling) (Object, error) {
	req, err := s.Request()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req = req.WithContext(ctx)

	slog.Debug("Dailymotion request", "method", req.Method, "path", req.URL.Path)

	result := Object{}
	var failure errorEnvelope
	resp, err := s.Do(req, &result, &failure)
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, newAPIError(resp, failure)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	return result, nil
}
