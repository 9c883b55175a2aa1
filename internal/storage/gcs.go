package storage

import (
	"context"
	"fmt"
	"path"
	"sort"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

type GCSStorage struct {
	client *storage.Client
}

func NewGCSStorage(ctx context.Context) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{client: client}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) Open(ctx context.Context, ref string) (*Video, error) {
	bucket, object, err := ParseGCSRef(ref)
	if err != nil {
		return nil, err
	}
	if object == "" {
		return nil, fmt.Errorf("missing object in %q", ref)
	}

	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", ref, err)
	}

	return &Video{
		ReadCloser: r,
		Name:       path.Base(object),
		Size:       r.Attrs.Size,
	}, nil
}

// ListVideos returns gs:// references of the videos under prefix.
func (s *GCSStorage) ListVideos(ctx context.Context, prefix string) ([]string, error) {
	bucket, objectPrefix, err := ParseGCSRef(prefix)
	if err != nil {
		return nil, err
	}

	var videos []string
	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: objectPrefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if isVideo(attrs.Name) {
			videos = append(videos, fmt.Sprintf("%s%s/%s", gcsScheme, bucket, attrs.Name))
		}
	}

	sort.Strings(videos)
	return videos, nil
}
