package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a PNG signature followed by an IHDR chunk header, enough for sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)

func newTestHandler(t *testing.T, maxSize int64) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStore(dir, maxSize)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	h := NewHandler(store, log)

	r := chi.NewRouter()
	r.Route("/api/upload", h.RegisterRoutes)
	r.Route("/uploads", h.RegisterStatic)
	return r, dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("title", "no file here"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func upload(t *testing.T, h http.Handler, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUploadAndServe(t *testing.T) {
	h, dir := newTestHandler(t, 1<<20)

	rec := upload(t, h, "image", "photo.jpg", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasSuffix(resp.Filename, ".png"), "extension follows the sniffed type, not the client name")
	assert.Equal(t, "/uploads/"+resp.Filename, resp.ImageURL)
	assert.FileExists(t, filepath.Join(dir, resp.Filename))

	for _, path := range []string{"/api/upload/" + resp.Filename, resp.ImageURL} {
		get := httptest.NewRecorder()
		h.ServeHTTP(get, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, get.Code, path)
		assert.Equal(t, pngBytes, get.Body.Bytes())
		assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
	}
}

func TestUploadWithoutFile(t *testing.T) {
	h, _ := newTestHandler(t, 1<<20)
	rec := upload(t, h, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, rec.Body.String())

	rec = upload(t, h, "other", "a.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, dir := newTestHandler(t, 1<<20)
	rec := upload(t, h, "image", "evil.png", []byte("#!/bin/sh\necho hi\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadTooLarge(t *testing.T) {
	h, _ := newTestHandler(t, 16)
	rec := upload(t, h, "image", "big.png", pngBytes)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServeRejectsBadNames(t *testing.T) {
	h, _ := newTestHandler(t, 1<<20)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload/.hidden", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenRejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "uploads")
	store, err := NewLocalStore(dir, 1024)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.png"), pngBytes, 0o600))

	for _, name := range []string{"../secret.png", "..%2Fsecret.png", "/etc/passwd", "a/b.png", ""} {
		_, err := store.Open(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestSaveEmpty(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1024)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}
