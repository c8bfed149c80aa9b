package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type ImageSaver interface {
	SaveUpload(file io.Reader, originalName string) (string, error)
}

type ImageHandler struct {
	images   ImageSaver
	assetDir string
}

func NewImageHandler(images ImageSaver, assetDir string) *ImageHandler {
	return &ImageHandler{images: images, assetDir: assetDir}
}

// UploadImage accepts a multipart "image" field and stores it in the asset
// directory. A missing or non-file field is a 400 and writes nothing.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		slog.Warn("invalid upload, expected a file field", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload: expected a file, got string/null"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("error opening uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return
	}
	defer file.Close()

	imageURL, err := h.images.SaveUpload(file, fileHeader.Filename)
	if err != nil {
		slog.Error("error saving uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{ImageURL: imageURL})
}

// ServeImage returns the raw bytes of a cached asset. Missing and
// zero-length files both produce a plain-text 404, matching the behavior of
// an asset whose remote fetch never completed.
func (h *ImageHandler) ServeImage(c *gin.Context) {
	name := filepath.Base(strings.TrimPrefix(c.Param("filepath"), "/"))
	if name == "." || name == string(filepath.Separator) {
		c.String(http.StatusNotFound, "Image Not Found")
		return
	}

	localPath := filepath.Join(h.assetDir, name)
	info, err := os.Stat(localPath)
	if err != nil || info.Size() == 0 {
		c.String(http.StatusNotFound, "Image Not Found")
		return
	}

	c.File(localPath)
}
