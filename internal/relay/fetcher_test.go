package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPDFPersistsResponseBody(t *testing.T) {
	payload := []byte("%PDF-1.4 fake body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	destPath := filepath.Join(t.TempDir(), "source.pdf")
	err := FetchPDF(context.Background(), srv.Client(), srv.URL, destPath)
	require.NoError(t, err)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFetchPDFFailsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	destPath := filepath.Join(t.TempDir(), "source.pdf")
	err := FetchPDF(context.Background(), srv.Client(), srv.URL, destPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.NoFileExists(t, destPath)
}

func TestFetchPDFFailsOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	destPath := filepath.Join(t.TempDir(), "source.pdf")
	err := FetchPDF(context.Background(), &http.Client{}, url, destPath)
	assert.Error(t, err)
}
