package relay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePadsShortDocument(t *testing.T) {
	dstPath := filepath.Join(t.TempDir(), "gelato_ready.pdf")

	count, err := NormalizePageCount(filepath.Join("testdata", "one_page.pdf"), dstPath)
	require.NoError(t, err)
	assert.Equal(t, RequiredPageCount, count)

	// Re-count independently of the normalizer's own bookkeeping.
	got, err := api.PageCountFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, RequiredPageCount, got)
}

func TestNormalizeLeavesExactLengthDocumentUntouched(t *testing.T) {
	srcPath := filepath.Join("testdata", "thirty_nine_pages.pdf")
	dstPath := filepath.Join(t.TempDir(), "gelato_ready.pdf")

	count, err := NormalizePageCount(srcPath, dstPath)
	require.NoError(t, err)
	assert.Equal(t, RequiredPageCount, count)

	src, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	dst, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	firstPass := filepath.Join(dir, "first.pdf")
	secondPass := filepath.Join(dir, "second.pdf")

	_, err := NormalizePageCount(filepath.Join("testdata", "one_page.pdf"), firstPass)
	require.NoError(t, err)

	count, err := NormalizePageCount(firstPass, secondPass)
	require.NoError(t, err)
	assert.Equal(t, RequiredPageCount, count)

	first, err := os.ReadFile(firstPass)
	require.NoError(t, err)
	second, err := os.ReadFile(secondPass)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeRejectsOverlongDocument(t *testing.T) {
	dstPath := filepath.Join(t.TempDir(), "gelato_ready.pdf")

	count, err := NormalizePageCount(filepath.Join("testdata", "forty_pages.pdf"), dstPath)
	require.Error(t, err)
	assert.Equal(t, 40, count)
	assert.Contains(t, err.Error(), "exceeding the required 39")
	assert.NoFileExists(t, dstPath)
}

func TestNormalizeFailsOnInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "not_a_pdf.pdf")
	require.NoError(t, os.WriteFile(srcPath, []byte("this is not a pdf"), 0o644))

	_, err := NormalizePageCount(srcPath, filepath.Join(dir, "out.pdf"))
	assert.Error(t, err)
}
