package export

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eskdev24/buyvia-voice-api/internal/config"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

// mockObjectClient implements objectClient for testing.
type mockObjectClient struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType string
	bucket      string
	failKey     string
	err         error
}

func (m *mockObjectClient) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil && (m.failKey == "" || strings.HasSuffix(key, m.failKey)) {
		return m.err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	m.bucket = bucket
	m.contentType = contentType
	return nil
}

func (m *mockObjectClient) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- NoopUploader ---

func TestNoopUploader(t *testing.T) {
	var u Uploader = NoopUploader{}
	if err := u.Upload(context.Background(), "k", []byte("x")); err != nil {
		t.Errorf("NoopUploader.Upload() should not error, got %v", err)
	}
	if u.Enabled() {
		t.Error("NoopUploader should report disabled")
	}
}

// --- NewUploader factory ---

func TestNewUploader_EmptyBucket_ReturnsNoopUploader(t *testing.T) {
	u, err := NewUploader(config.ExportConfig{})
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}
	if _, ok := u.(NoopUploader); !ok {
		t.Errorf("expected NoopUploader, got %T", u)
	}
}

func TestNewUploader_WithBucket_ReturnsS3Uploader(t *testing.T) {
	useSSL := false
	u, err := NewUploader(config.ExportConfig{
		Bucket:    "buyvia-curation",
		Endpoint:  "localhost:9000",
		Region:    "us-east-1",
		UseSSL:    &useSSL,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}

	s3u, ok := u.(*S3Uploader)
	if !ok {
		t.Fatalf("expected *S3Uploader, got %T", u)
	}
	if s3u.bucket != "buyvia-curation" {
		t.Errorf("bucket = %q, want %q", s3u.bucket, "buyvia-curation")
	}
	if !s3u.Enabled() {
		t.Error("S3Uploader should report enabled")
	}
}

// --- S3Uploader ---

func TestS3Uploader_Upload(t *testing.T) {
	mock := &mockObjectClient{}
	u := &S3Uploader{client: mock, bucket: "b"}

	if err := u.Upload(context.Background(), "curation/x/learned.json", []byte("[]")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if mock.bucket != "b" || mock.contentType != "application/json" {
		t.Errorf("put (bucket, type) = (%q, %q), want (b, application/json)", mock.bucket, mock.contentType)
	}
	if string(mock.objects["curation/x/learned.json"]) != "[]" {
		t.Errorf("object body = %q", mock.objects["curation/x/learned.json"])
	}
}

func TestS3Uploader_Upload_WrapsError(t *testing.T) {
	cause := errors.New("access denied")
	u := &S3Uploader{client: &mockObjectClient{err: cause}, bucket: "b"}

	err := u.Upload(context.Background(), "k", nil)
	if !errors.Is(err, cause) {
		t.Errorf("Upload() error = %v, want wrapped %v", err, cause)
	}
	if !strings.Contains(err.Error(), "upload k to S3") {
		t.Errorf("error should name the key, got %v", err)
	}
}

// --- Publish ---

func TestPrefix(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 30, 5, 0, time.FixedZone("GMT+1", 3600))
	if got := Prefix("curation", at); got != "curation/20261018T113005Z" {
		t.Errorf("Prefix() = %q", got)
	}
}

func TestPublish_WritesBothObjects(t *testing.T) {
	mock := &mockObjectClient{}
	u := &S3Uploader{client: mock, bucket: "b"}
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	suggestion := "my"

	snap := Snapshot{
		TakenAt: at,
		Learned: []types.LearnedMapping{{Dialect: "chale", Standard: "friend", CreatedAt: at, UpdatedAt: at}},
		Unknown: []types.UnknownWordRecord{{
			ID: "01J00000000000000000000000", Word: "mai", Context: "ad dis tu mai cut",
			LoggedAt: at, SuggestedMapping: &suggestion, Status: types.StatusSuggested, UpdatedAt: at,
		}},
	}

	prefix, err := Publish(context.Background(), u, "curation", snap)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if prefix != "curation/20261018T120000Z" {
		t.Errorf("prefix = %q", prefix)
	}

	want := []string{"curation/20261018T120000Z/learned.json", "curation/20261018T120000Z/unknown.json"}
	if diff := cmp.Diff(want, mock.keys()); diff != "" {
		t.Fatalf("uploaded keys mismatch (-want +got):\n%s", diff)
	}

	var learned []types.LearnedMapping
	if err := json.Unmarshal(mock.objects[want[0]], &learned); err != nil {
		t.Fatalf("decode learned.json: %v", err)
	}
	if diff := cmp.Diff(snap.Learned, learned); diff != "" {
		t.Errorf("learned.json mismatch (-want +got):\n%s", diff)
	}
}

func TestPublish_EmptySnapshotWritesEmptyArrays(t *testing.T) {
	mock := &mockObjectClient{}
	u := &S3Uploader{client: mock, bucket: "b"}

	prefix, err := Publish(context.Background(), u, "curation", Snapshot{TakenAt: time.Unix(0, 0)})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	for _, name := range []string{LearnedObject, UnknownObject} {
		if got := string(mock.objects[prefix+"/"+name]); got != "[]" {
			t.Errorf("%s = %q, want []", name, got)
		}
	}
}

func TestPublish_PropagatesUploadError(t *testing.T) {
	cause := errors.New("bucket gone")
	u := &S3Uploader{client: &mockObjectClient{err: cause, failKey: UnknownObject}, bucket: "b"}

	_, err := Publish(context.Background(), u, "curation", Snapshot{TakenAt: time.Now()})
	if !errors.Is(err, cause) {
		t.Errorf("Publish() error = %v, want %v", err, cause)
	}
}
