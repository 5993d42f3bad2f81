package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	miniolib "github.com/minio/minio-go/v7"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	putErr          error
	removeErr       error

	madeBucket  bool
	putKeys     []string
	putTypes    []string
	removedKeys []string
}

func (f *fakeMinio) BucketExists(context.Context, string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(context.Context, string, miniolib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, _ io.Reader, _ int64, opts miniolib.PutObjectOptions) (miniolib.UploadInfo, error) {
	f.putKeys = append(f.putKeys, key)
	f.putTypes = append(f.putTypes, opts.ContentType)
	return miniolib.UploadInfo{Key: key}, f.putErr
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ miniolib.RemoveObjectOptions) error {
	f.removedKeys = append(f.removedKeys, key)
	return f.removeErr
}

const testBaseURL = "https://img.example.com/blog"

func newTestStore(t *testing.T, api *fakeMinio) *Store {
	t.Helper()
	s, err := newWithAPI(context.Background(), api, "avatars", testBaseURL)
	if err != nil {
		t.Fatalf("newWithAPI failed: %v", err)
	}
	return s
}

func TestNew_CreatesMissingBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	newTestStore(t, api)

	if !api.madeBucket {
		t.Error("missing bucket was not created")
	}
}

func TestNew_ExistingBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	newTestStore(t, api)

	if api.madeBucket {
		t.Error("existing bucket was re-created")
	}
}

func TestNew_BucketCheckError(t *testing.T) {
	api := &fakeMinio{bucketExistsErr: errors.New("boom")}
	if _, err := newWithAPI(context.Background(), api, "avatars", testBaseURL); err == nil {
		t.Error("expected error when bucket check fails")
	}
}

func TestUpload(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s := newTestStore(t, api)

	url, err := s.Upload(context.Background(), "image/png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(url, testBaseURL+"/"+keyPrefix) {
		t.Errorf("url = %q, want base URL plus %q key", url, keyPrefix)
	}
	if len(api.putKeys) != 1 || !strings.HasPrefix(api.putKeys[0], keyPrefix) {
		t.Errorf("stored keys = %v", api.putKeys)
	}
	if api.putTypes[0] != "image/png" {
		t.Errorf("content type = %q", api.putTypes[0])
	}
}

// Two uploads of the same file must never collide.
func TestUpload_UniqueKeys(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s := newTestStore(t, api)

	u1, _ := s.Upload(context.Background(), "image/png", strings.NewReader("x"), 1)
	u2, _ := s.Upload(context.Background(), "image/png", strings.NewReader("x"), 1)

	if u1 == u2 {
		t.Errorf("identical uploads got the same URL %q", u1)
	}
}

func TestDelete(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s := newTestStore(t, api)

	url, err := s.Upload(context.Background(), "image/png", strings.NewReader("x"), 1)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(api.removedKeys) != 1 || api.removedKeys[0] != api.putKeys[0] {
		t.Errorf("removed keys = %v, want %v", api.removedKeys, api.putKeys)
	}
}

// URLs from other hosts are silently ignored: the record may carry an
// externally hosted image that was never ours to delete.
func TestDelete_ForeignURL(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s := newTestStore(t, api)

	if err := s.Delete(context.Background(), "https://elsewhere.example.com/pic.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(api.removedKeys) != 0 {
		t.Errorf("foreign URL triggered removal: %v", api.removedKeys)
	}
}
