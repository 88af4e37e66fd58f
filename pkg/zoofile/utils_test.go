package zoofile_test

import (
	"bytes"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/zoofs/zoofs/pkg/memstore"
	"github.com/zoofs/zoofs/pkg/zoofile"
)

//go:generate mockgen -destination=./session_mock_test.go -package=zoofile_test github.com/zoofs/zoofs/pkg/zoofile Session

// newMemoryFS returns an FS on a fresh in-memory store with its own
// Classifier, so tests never share classifications.
func newMemoryFS(t *testing.T, options ...zoofile.ClassifierOption) (*zoofile.FS, *memstore.MemoryStore) {
	t.Helper()

	store := memstore.New()
	fs, err := zoofile.NewFS(zoofile.Config{
		Session:    store,
		Classifier: zoofile.NewClassifier(options...),
	})
	if err != nil {
		t.Fatal(err)
	}
	return fs, store
}

// newMockFS returns an FS on a mocked session.
func newMockFS(t *testing.T, config zoofile.Config) (*zoofile.FS, *MockSession) {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	session := NewMockSession(mockCtrl)

	config.Session = session
	if config.Classifier == nil {
		config.Classifier = zoofile.NewClassifier()
	}
	fs, err := zoofile.NewFS(config)
	if err != nil {
		t.Fatal(err)
	}
	return fs, session
}

func payload(b byte, size int) []byte {
	return bytes.Repeat([]byte{b}, size)
}
