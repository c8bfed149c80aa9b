package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSaver struct {
	imageURL string
	err      error
	calls    int
}

func (f *fakeSaver) SaveUpload(file io.Reader, originalName string) (string, error) {
	f.calls++
	return f.imageURL, f.err
}

func newImageRouter(saver ImageSaver, assetDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewImageHandler(saver, assetDir)
	r.POST("/api/upload-image", RequireAPIKey(testAPIKey), h.UploadImage)
	r.GET("/images/*filepath", h.ServeImage)
	return r
}

func multipartBody(t *testing.T, fieldIsFile bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if fieldIsFile {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("jpeg bytes"))
	} else {
		writer.WriteField("image", "not a file")
	}

	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadImage_Success(t *testing.T) {
	saver := &fakeSaver{imageURL: "/images/123-photo.jpg"}
	r := newImageRouter(saver, t.TempDir())

	body, contentType := multipartBody(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(APIKeyHeader, testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, saver.calls)

	var res UploadResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "/images/123-photo.jpg", res.ImageURL)
}

func TestUploadImage_NonFileFieldRejected(t *testing.T) {
	saver := &fakeSaver{}
	r := newImageRouter(saver, t.TempDir())

	body, contentType := multipartBody(t, false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(APIKeyHeader, testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, saver.calls)
}

func TestUploadImage_MissingKeyUnauthorized(t *testing.T) {
	saver := &fakeSaver{}
	r := newImageRouter(saver, t.TempDir())

	body, contentType := multipartBody(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, saver.calls)
}

func TestUploadImage_SaveFailure(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	r := newImageRouter(saver, t.TempDir())

	body, contentType := multipartBody(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(APIKeyHeader, testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServeImage_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cached.jpg"), []byte("jpeg bytes"), 0o640); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := newImageRouter(&fakeSaver{}, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/cached.jpg", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg bytes", w.Body.String())
}

func TestServeImage_MissingFile(t *testing.T) {
	r := newImageRouter(&fakeSaver{}, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/nope.jpg", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Image Not Found", w.Body.String())
}

func TestServeImage_EmptyFileIs404(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.jpg"), nil, 0o640); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := newImageRouter(&fakeSaver{}, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/empty.jpg", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeImage_TraversalStaysInAssetDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "..", "secret.txt")
	os.WriteFile(outside, []byte("secret"), 0o640)
	t.Cleanup(func() { os.Remove(outside) })

	r := newImageRouter(&fakeSaver{}, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/..%2Fsecret.txt", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
