// Package objectstore generates upload destinations for listing images on
// Google Cloud Storage. The client is injected through an explicit config
// so callers own its lifecycle; nothing here caches connections globally.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type Config struct {
	Bucket          string
	CredentialsFile string
	// URLExpiry bounds how long a signed upload URL stays valid.
	// Defaults to 15 minutes.
	URLExpiry time.Duration
}

type Store struct {
	cfg    Config
	client *storage.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = 15 * time.Minute
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Upload pairs a short-lived signed PUT URL with the stable public URL the
// object will be served from once uploaded.
type Upload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectURL string `json:"objectUrl"`
}

func (s *Store) NewListingImageUpload(contentType string) (*Upload, error) {
	object := "listing-images/" + uuid.NewString()
	url, err := s.client.Bucket(s.cfg.Bucket).SignedURL(object, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(s.cfg.URLExpiry),
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	return &Upload{
		UploadURL: url,
		ObjectURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Bucket, object),
	}, nil
}
