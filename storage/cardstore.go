package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadError wraps a storage backend failure. Callers must not assume
// partial success - the object either exists under the returned URL or not
// at all.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("error while uploading the image: %s", e.Err.Error())
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type MinioCardStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioCardStore builds a card store from the STORAGE_* environment.
// STORAGE_PUBLIC_URL is the externally reachable base under which the
// bucket is served.
func NewMinioCardStore() (*MinioCardStore, error) {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("STORAGE_ENDPOINT is not set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("STORAGE_ACCESS_KEY"), os.Getenv("STORAGE_SECRET_KEY"), ""),
		Secure: os.Getenv("STORAGE_USE_SSL") != "false",
	})
	if err != nil {
		return nil, fmt.Errorf("could not create storage client: %w", err)
	}

	publicBaseURL := os.Getenv("STORAGE_PUBLIC_URL")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s", endpoint)
	}

	return &MinioCardStore{
		client:        client,
		bucket:        os.Getenv("STORAGE_BUCKET"),
		publicBaseURL: publicBaseURL,
	}, nil
}

// Upload stores the file under slug(companyName)/<uuid> and returns the
// public URL. A uuid key keeps concurrent submissions for the same company
// from colliding.
func (s *MinioCardStore) Upload(ctx context.Context, companyName string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer src.Close()

	key := ObjectKey(companyName)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", &UploadError{Err: err}
	}

	return PublicURL(s.publicBaseURL, s.bucket, key), nil
}

// ObjectKey derives the storage key for a new card image of the given
// company.
func ObjectKey(companyName string) string {
	return fmt.Sprintf("%s/%s", slug.Make(companyName), uuid.NewString())
}

// PublicURL composes the externally resolvable URL of an object.
func PublicURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, key)
}
