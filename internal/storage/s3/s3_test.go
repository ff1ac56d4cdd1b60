package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/domain"
)

type recorded struct {
	method, path, contentType, body string
}

func TestStorePutObject(t *testing.T) {
	var mu sync.Mutex
	var got []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, recorded{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(body)})
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewStore(context.Background(), Config{
		Bucket:    "resumes",
		Endpoint:  srv.URL,
		Prefix:    "/runs/",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "acme/resume.pdf", strings.NewReader("%PDF")))

	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/resumes/runs/acme/resume.pdf", got[0].path)
	assert.Equal(t, "application/pdf", got[0].contentType)
	assert.Equal(t, "%PDF", got[0].body)
}

func TestStorePutFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer srv.Close()

	s, err := NewStore(context.Background(), Config{Bucket: "b", Endpoint: srv.URL, AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	err = s.Put(context.Background(), "x.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestNewStoreRequiresBucket(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})
	assert.Error(t, err)
}
