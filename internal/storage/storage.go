package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

const gcsScheme = "gs://"

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
}

// Video is an opened upload source. Size is -1 when unknown.
type Video struct {
	io.ReadCloser
	Name string
	Size int64
}

func isVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsGCSRef reports whether ref points into Google Cloud Storage.
func IsGCSRef(ref string) bool {
	return strings.HasPrefix(ref, gcsScheme)
}

// ParseGCSRef splits gs://bucket/object into bucket and object.
func ParseGCSRef(ref string) (bucket, object string, err error) {
	if !IsGCSRef(ref) {
		return "", "", fmt.Errorf("not a gcs reference: %q", ref)
	}

	bucket, object, _ = strings.Cut(strings.TrimPrefix(ref, gcsScheme), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", ref)
	}

	return bucket, object, nil
}

// Resolver opens local paths and gs:// references. The GCS client is
// created on first use.
type Resolver struct {
	local *LocalStorage

	mu     sync.Mutex
	gcs    *GCSStorage
	newGCS func(ctx context.Context) (*GCSStorage, error)
}

func NewResolver(local *LocalStorage) *Resolver {
	return &Resolver{
		local:  local,
		newGCS: NewGCSStorage,
	}
}

func (r *Resolver) Open(ctx context.Context, ref string) (*Video, error) {
	if !IsGCSRef(ref) {
		return r.local.Open(ref)
	}

	gcs, err := r.gcsStorage(ctx)
	if err != nil {
		return nil, err
	}
	return gcs.Open(ctx, ref)
}

// Expand turns directories and gs:// prefixes ending in "/" into the videos
// they contain. Other references are returned unchanged.
func (r *Resolver) Expand(ctx context.Context, refs []string) ([]string, error) {
	var expanded []string
	for _, ref := range refs {
		switch {
		case IsGCSRef(ref) && strings.HasSuffix(ref, "/"):
			gcs, err := r.gcsStorage(ctx)
			if err != nil {
				return nil, err
			}
			videos, err := gcs.ListVideos(ctx, ref)
			if err != nil {
				return nil, err
			}
			expanded = append(expanded, videos...)
		case !IsGCSRef(ref) && r.local.IsDir(ref):
			videos, err := r.local.ListVideos(ref)
			if err != nil {
				return nil, err
			}
			expanded = append(expanded, videos...)
		default:
			expanded = append(expanded, ref)
		}
	}
	return expanded, nil
}

func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gcs == nil {
		return nil
	}
	return r.gcs.Close()
}

func (r *Resolver) gcsStorage(ctx context.Context) (*GCSStorage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gcs != nil {
		return r.gcs, nil
	}

	gcs, err := r.newGCS(ctx)
	if err != nil {
		return nil, err
	}
	r.gcs = gcs
	return gcs, nil
}
