package dailymotion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		Credentials: Credentials{
			Username:  "test",
			Password:  "12345",
			APIKey:    "key",
			APISecret: "secret",
		},
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	return client, server
}

// decodedQuery returns the query string with escapes such as %2C resolved.
func decodedQuery(r *http.Request) string {
	query, err := url.QueryUnescape(r.URL.RawQuery)
	if err != nil {
		return r.URL.RawQuery
	}
	return query
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantBaseURL string
	}{
		{
			name:        "defaultBaseURL",
			cfg:         Config{},
			wantBaseURL: defaultBaseURL,
		},
		{
			name:        "customBaseURL",
			cfg:         Config{BaseURL: "http://localhost:9000/"},
			wantBaseURL: "http://localhost:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.cfg)

			if client.baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %q, want %q", client.baseURL, tt.wantBaseURL)
			}
			if client.httpClient == nil {
				t.Error("httpClient is nil")
			}
			if client.AccessToken() != "" {
				t.Errorf("AccessToken() = %q, want empty", client.AccessToken())
			}
		})
	}
}

func TestRequestAccessToken(t *testing.T) {
	tests := []struct {
		name     string
		request  func(*Client, context.Context) (string, error)
		wantForm map[string]string
	}{
		{
			name:    "passwordGrant",
			request: (*Client).RequestAccessToken,
			wantForm: map[string]string{
				"grant_type":    "password",
				"client_id":     "key",
				"client_secret": "secret",
				"username":      "test",
				"password":      "12345",
			},
		},
		{
			name:    "manageVideosScope",
			request: (*Client).RequestAccessTokenManageVideosScope,
			wantForm: map[string]string{
				"grant_type":    "password",
				"client_id":     "key",
				"client_secret": "secret",
				"username":      "test",
				"password":      "12345",
				"scope":         "manage_videos",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)

				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if r.URL.Path != "/oauth/token" {
					t.Errorf("path = %s, want /oauth/token", r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Errorf("parse form: %v", err)
					return
				}
				if len(r.PostForm) != len(tt.wantForm) {
					t.Errorf("form has %d fields, want %d: %v", len(r.PostForm), len(tt.wantForm), r.PostForm)
				}
				for key, want := range tt.wantForm {
					if got := r.PostForm.Get(key); got != want {
						t.Errorf("form[%s] = %q, want %q", key, got, want)
					}
				}

				writeJSON(t, w, map[string]any{"access_token": "token", "expires_in": 3600})
			})

			token, err := tt.request(client, context.Background())
			if err != nil {
				t.Fatalf("request token error: %v", err)
			}

			if token != "token" {
				t.Errorf("token = %q, want %q", token, "token")
			}
			if client.AccessToken() != "token" {
				t.Errorf("AccessToken() = %q, want %q", client.AccessToken(), "token")
			}
			if client.Token() == nil {
				t.Error("Token() = nil after successful request")
			}
			if got := atomic.LoadInt32(&calls); got != 1 {
				t.Errorf("calls = %d, want 1", got)
			}
		})
	}
}

func TestRequestAccessTokenRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"bad credentials"}`))
	})

	if _, err := client.RequestAccessToken(context.Background()); err == nil {
		t.Fatal("RequestAccessToken() should fail on 400")
	}
	if client.AccessToken() != "" {
		t.Errorf("AccessToken() = %q, want empty after failure", client.AccessToken())
	}
}

func TestGenerateUploadURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/file/upload" {
			t.Errorf("path = %s, want /file/upload", r.URL.Path)
		}
		if got := r.URL.RawQuery; got != "access_token=token" {
			t.Errorf("query = %q, want access_token=token", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want none", got)
		}

		writeJSON(t, w, map[string]string{"upload_url": "upload_url"})
	})
	client.session.accessToken = "token"

	uploadURL, err := client.GenerateUploadURL(context.Background())
	if err != nil {
		t.Fatalf("GenerateUploadURL() error: %v", err)
	}

	if uploadURL != "upload_url" {
		t.Errorf("GenerateUploadURL() = %q, want upload_url", uploadURL)
	}
	if client.UploadURL() != "upload_url" {
		t.Errorf("UploadURL() = %q, want upload_url", client.UploadURL())
	}
}

func TestPostVideo(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(t *testing.T, w http.ResponseWriter)
		wantURL  string
		wantErr  bool
		errMatch error
	}{
		{
			name: "objectResponse",
			respond: func(t *testing.T, w http.ResponseWriter) {
				writeJSON(t, w, map[string]string{"url": "video_url"})
			},
			wantURL: "video_url",
		},
		{
			name: "stringEncodedResponse",
			respond: func(t *testing.T, w http.ResponseWriter) {
				writeJSON(t, w, `{"url":"video_url"}`)
			},
			wantURL: "video_url",
		},
		{
			name: "missingURL",
			respond: func(t *testing.T, w http.ResponseWriter) {
				writeJSON(t, w, map[string]string{"name": "video.mp4"})
			},
			wantErr:  true,
			errMatch: ErrFieldMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if r.URL.Path != "/upload" {
					t.Errorf("path = %s, want /upload", r.URL.Path)
				}

				file, header, err := r.FormFile("file")
				if err != nil {
					t.Errorf("form file: %v", err)
					return
				}
				defer func() { _ = file.Close() }()

				data, _ := io.ReadAll(file)
				if string(data) != "video_data" {
					t.Errorf("file content = %q, want video_data", data)
				}
				if header.Filename != "clip.mp4" {
					t.Errorf("filename = %q, want clip.mp4", header.Filename)
				}

				tt.respond(t, w)
			})
			client.session.uploadURL = server.URL + "/upload"

			videoURL, err := client.PostVideo(context.Background(), "clip.mp4", strings.NewReader("video_data"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("PostVideo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errMatch != nil && !errors.Is(err, tt.errMatch) {
				t.Errorf("PostVideo() error = %v, want %v", err, tt.errMatch)
			}
			if tt.wantErr {
				return
			}

			if videoURL != tt.wantURL {
				t.Errorf("PostVideo() = %q, want %q", videoURL, tt.wantURL)
			}
			if client.UploadedVideoURL() != tt.wantURL {
				t.Errorf("UploadedVideoURL() = %q, want %q", client.UploadedVideoURL(), tt.wantURL)
			}
		})
	}
}

func TestCreateVideo(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/me/videos" {
			t.Errorf("request = %s %s, want POST /me/videos", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if got := r.PostForm.Get("access_token"); got != "token" {
			t.Errorf("access_token = %q, want token", got)
		}
		if got := r.PostForm.Get("url"); got != "video_url" {
			t.Errorf("url = %q, want video_url", got)
		}

		writeJSON(t, w, map[string]string{"id": "video_id"})
	})
	client.session.accessToken = "token"
	client.session.uploadedVideoURL = "video_url"

	id, err := client.CreateVideo(context.Background())
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}

	if id != "video_id" {
		t.Errorf("CreateVideo() = %q, want video_id", id)
	}
	if client.VideoID() != "video_id" {
		t.Errorf("VideoID() = %q, want video_id", client.VideoID())
	}
}

func TestPublishVideo(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/video/video_id" {
			t.Errorf("request = %s %s, want POST /video/video_id", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}

		want := map[string]string{
			"access_token": "token",
			"published":    "true",
			"title":        "video title",
			"channel":      "shortfilms",
			"tags":         "some_tag",
		}
		if len(r.PostForm) != len(want) {
			t.Errorf("form has %d fields, want %d: %v", len(r.PostForm), len(want), r.PostForm)
		}
		for key, value := range want {
			if got := r.PostForm.Get(key); got != value {
				t.Errorf("form[%s] = %q, want %q", key, got, value)
			}
		}

		writeJSON(t, w, map[string]string{"id": "video_id"})
	})
	client.session.accessToken = "token"
	client.session.videoID = "video_id"

	resp, err := client.PublishVideo(context.Background(), Metadata{
		"title":   "video title",
		"channel": "shortfilms",
		"tags":    "some_tag",
	})
	if err != nil {
		t.Fatalf("PublishVideo() error: %v", err)
	}

	if resp.String("id") != "video_id" {
		t.Errorf("response id = %q, want video_id", resp.String("id"))
	}
}

func TestPublishVideoOverridesMetadataToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if got := r.PostForm.Get("access_token"); got != "token" {
			t.Errorf("access_token = %q, want token", got)
		}
		if got := r.PostForm.Get("published"); got != "true" {
			t.Errorf("published = %q, want true", got)
		}
		writeJSON(t, w, map[string]string{})
	})
	client.session.accessToken = "token"
	client.session.videoID = "video_id"

	_, err := client.PublishVideo(context.Background(), Metadata{
		"access_token": "other",
		"published":    "false",
	})
	if err != nil {
		t.Fatalf("PublishVideo() error: %v", err)
	}
}

func TestGetVideo(t *testing.T) {
	tests := []struct {
		name      string
		videoID   string
		fields    string
		wantQuery string
		wantCalls int32
		wantNil   bool
	}{
		{
			name:      "withFields",
			videoID:   "123",
			fields:    "url,channel",
			wantQuery: "fields=url,channel",
			wantCalls: 1,
		},
		{
			name:      "withoutFields",
			videoID:   "123",
			wantQuery: "",
			wantCalls: 1,
		},
		{
			name:      "emptyID",
			videoID:   "",
			fields:    "url",
			wantCalls: 0,
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)

				if r.URL.Path != "/video/123" {
					t.Errorf("path = %s, want /video/123", r.URL.Path)
				}
				if decodedQuery(r) != tt.wantQuery {
					t.Errorf("query = %q, want %q", decodedQuery(r), tt.wantQuery)
				}

				writeJSON(t, w, map[string]string{"url": "video_url", "channel": "video_channel"})
			})

			video, err := client.GetVideo(context.Background(), tt.videoID, tt.fields)
			if err != nil {
				t.Fatalf("GetVideo() error: %v", err)
			}

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantNil {
				if video != nil {
					t.Errorf("GetVideo() = %v, want nil", video)
				}
				return
			}
			if video.String("url") != "video_url" || video.String("channel") != "video_channel" {
				t.Errorf("GetVideo() = %v, want url and channel", video)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	t.Run("notAttempted", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		})

		videoURL, err := client.VideoURL(context.Background())
		if !errors.Is(err, ErrNoVideoID) {
			t.Errorf("VideoURL() error = %v, want ErrNoVideoID", err)
		}
		if videoURL != "" {
			t.Errorf("VideoURL() = %q, want empty", videoURL)
		}
		if got := atomic.LoadInt32(&calls); got != 0 {
			t.Errorf("calls = %d, want 0", got)
		}
	})

	t.Run("memoized", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			if r.URL.Path != "/video/video_id" || decodedQuery(r) != "fields=url" {
				t.Errorf("request = %s?%s, want /video/video_id?fields=url", r.URL.Path, decodedQuery(r))
			}
			writeJSON(t, w, map[string]string{"url": "url"})
		})
		client.session.videoID = "video_id"

		for i := 0; i < 2; i++ {
			videoURL, err := client.VideoURL(context.Background())
			if err != nil {
				t.Fatalf("VideoURL() error: %v", err)
			}
			if videoURL != "url" {
				t.Errorf("VideoURL() = %q, want url", videoURL)
			}
		}

		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("calls = %d, want 1", got)
		}
	})

	t.Run("staleAfterVideoIDChange", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]string{"url": "first"})
		})
		client.session.videoID = "first_id"

		if _, err := client.VideoURL(context.Background()); err != nil {
			t.Fatalf("VideoURL() error: %v", err)
		}

		client.session.videoID = "second_id"
		videoURL, err := client.VideoURL(context.Background())
		if err != nil {
			t.Fatalf("VideoURL() error: %v", err)
		}
		if videoURL != "first" {
			t.Errorf("VideoURL() = %q, want memoized first", videoURL)
		}
	})

	t.Run("lookupFailed", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			writeJSON(t, w, map[string]string{"id": "video_id"})
		})
		client.session.videoID = "video_id"

		videoURL, err := client.VideoURL(context.Background())
		if !errors.Is(err, ErrFieldMissing) {
			t.Errorf("VideoURL() error = %v, want ErrFieldMissing", err)
		}
		if errors.Is(err, ErrNoVideoID) {
			t.Error("failed lookup reported as not attempted")
		}
		if videoURL != "" {
			t.Errorf("VideoURL() = %q, want empty", videoURL)
		}

		_, _ = client.VideoURL(context.Background())
		if got := atomic.LoadInt32(&calls); got != 2 {
			t.Errorf("calls = %d, want 2 (failures are not memoized)", got)
		}
	})
}

func TestGetAuthenticatedUserVideos(t *testing.T) {
	tests := []struct {
		name      string
		fields    string
		wantQuery string
	}{
		{name: "withFields", fields: "id,title", wantQuery: "fields=id,title"},
		{name: "withoutFields", fields: "", wantQuery: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/me/videos" {
					t.Errorf("request = %s %s, want GET /me/videos", r.Method, r.URL.Path)
				}
				if decodedQuery(r) != tt.wantQuery {
					t.Errorf("query = %q, want %q", decodedQuery(r), tt.wantQuery)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token" {
					t.Errorf("Authorization = %q, want Bearer token", got)
				}

				writeJSON(t, w, map[string]any{
					"page":     1,
					"limit":    10,
					"total":    1,
					"has_more": false,
					"list":     []map[string]string{{"id": "idvideo", "title": "testvideo"}},
				})
			})
			client.session.accessToken = "token"

			listing, err := client.GetAuthenticatedUserVideos(context.Background(), tt.fields)
			if err != nil {
				t.Fatalf("GetAuthenticatedUserVideos() error: %v", err)
			}

			if listing.String("total") != "1" {
				t.Errorf("total = %q, want 1", listing.String("total"))
			}
			list, ok := listing["list"].([]any)
			if !ok || len(list) != 1 {
				t.Errorf("list = %v, want one entry", listing["list"])
			}
		})
	}
}

func TestGetAuthenticatedUserInfo(t *testing.T) {
	tests := []struct {
		name      string
		fields    string
		wantPath  string
		wantQuery string
	}{
		{name: "withFields", fields: "id,screenname", wantPath: "/me", wantQuery: "fields=id,screenname"},
		{name: "withoutFields", fields: "", wantPath: "/me/", wantQuery: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.wantPath)
				}
				if decodedQuery(r) != tt.wantQuery {
					t.Errorf("query = %q, want %q", decodedQuery(r), tt.wantQuery)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token" {
					t.Errorf("Authorization = %q, want Bearer token", got)
				}

				writeJSON(t, w, map[string]string{"id": "id", "screenname": "screenname"})
			})
			client.session.accessToken = "token"

			user, err := client.GetAuthenticatedUserInfo(context.Background(), tt.fields)
			if err != nil {
				t.Fatalf("GetAuthenticatedUserInfo() error: %v", err)
			}

			if user.String("screenname") != "screenname" {
				t.Errorf("screenname = %q, want screenname", user.String("screenname"))
			}
		})
	}
}

func TestDeleteVideo(t *testing.T) {
	tests := []struct {
		name      string
		videoID   string
		wantCalls int32
		wantNil   bool
	}{
		{name: "existingVideo", videoID: "xxx", wantCalls: 1},
		{name: "emptyID", videoID: "", wantCalls: 0, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)

				if r.Method != http.MethodDelete || r.URL.Path != "/me/videos/xxx" {
					t.Errorf("request = %s %s, want DELETE /me/videos/xxx", r.Method, r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token" {
					t.Errorf("Authorization = %q, want Bearer token", got)
				}

				writeJSON(t, w, map[string]any{})
			})
			client.session.accessToken = "token"

			resp, err := client.DeleteVideo(context.Background(), tt.videoID)
			if err != nil {
				t.Fatalf("DeleteVideo() error: %v", err)
			}

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantNil {
				if resp != nil {
					t.Errorf("DeleteVideo() = %v, want nil", resp)
				}
				return
			}
			if resp == nil || len(resp) != 0 {
				t.Errorf("DeleteVideo() = %v, want empty object", resp)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Missing required scope.","type":"insufficient_scope"}}`))
	})
	client.session.accessToken = "token"

	_, err := client.DeleteVideo(context.Background(), "xxx")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("DeleteVideo() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if apiErr.Type != "insufficient_scope" {
		t.Errorf("Type = %q, want insufficient_scope", apiErr.Type)
	}
	if !strings.Contains(apiErr.Error(), "Missing required scope.") {
		t.Errorf("Error() = %q, want message included", apiErr.Error())
	}
}

func TestUploadRoundTrip(t *testing.T) {
	var published map[string]string
	var serverURL string

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			writeJSON(t, w, map[string]string{"access_token": "token"})
		case r.URL.Path == "/file/upload":
			writeJSON(t, w, map[string]string{"upload_url": serverURL + "/upload"})
		case r.URL.Path == "/upload":
			if _, _, err := r.FormFile("file"); err != nil {
				t.Errorf("form file: %v", err)
			}
			writeJSON(t, w, `{"url":"video_url"}`)
		case r.URL.Path == "/me/videos" && r.Method == http.MethodPost:
			_ = r.ParseForm()
			if r.PostForm.Get("url") != "video_url" {
				t.Errorf("create url = %q, want video_url", r.PostForm.Get("url"))
			}
			writeJSON(t, w, map[string]string{"id": "video_id"})
		case r.URL.Path == "/video/video_id":
			_ = r.ParseForm()
			published = map[string]string{}
			for key := range r.PostForm {
				published[key] = r.PostForm.Get(key)
			}
			writeJSON(t, w, map[string]string{"id": "video_id"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	serverURL = server.URL

	ctx := context.Background()

	token, err := client.RequestAccessToken(ctx)
	if err != nil || token != "token" {
		t.Fatalf("RequestAccessToken() = %q, %v", token, err)
	}
	uploadURL, err := client.GenerateUploadURL(ctx)
	if err != nil || uploadURL != server.URL+"/upload" {
		t.Fatalf("GenerateUploadURL() = %q, %v", uploadURL, err)
	}
	videoURL, err := client.PostVideo(ctx, "video.mp4", strings.NewReader("video_data"))
	if err != nil || videoURL != "video_url" {
		t.Fatalf("PostVideo() = %q, %v", videoURL, err)
	}
	id, err := client.CreateVideo(ctx)
	if err != nil || id != "video_id" {
		t.Fatalf("CreateVideo() = %q, %v", id, err)
	}
	if _, err := client.PublishVideo(ctx, Metadata{"title": "video title", "channel": "shortfilms", "tags": "some_tag"}); err != nil {
		t.Fatalf("PublishVideo() error: %v", err)
	}

	want := map[string]string{
		"access_token": "token",
		"published":    "true",
		"title":        "video title",
		"channel":      "shortfilms",
		"tags":         "some_tag",
	}
	if len(published) != len(want) {
		t.Errorf("published form = %v, want %v", published, want)
	}
	for key, value := range want {
		if published[key] != value {
			t.Errorf("published[%s] = %q, want %q", key, published[key], value)
		}
	}
}
