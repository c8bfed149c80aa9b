// Package assets resolves logical image references to locally servable
// files, either from direct uploads or by fetching a remote URL once and
// keeping the bytes on disk.
package assets

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// PublicPrefix is the URL prefix under which cached files are served.
const PublicPrefix = "/images/"

// Resolution is the outcome of a lazy remote lookup. Resolved=false means
// the caller should proceed without an image rather than abort.
type Resolution struct {
	PublicPath string
	Resolved   bool
}

// Cache writes image assets into a single local directory.
type Cache struct {
	dir        string
	httpClient *http.Client
}

// NewCache creates the asset directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}

	// No timeout: a hanging remote fetch during seeding blocks startup,
	// which is an accepted availability risk.
	return &Cache{dir: dir, httpClient: http.DefaultClient}, nil
}

// Dir returns the local asset directory.
func (c *Cache) Dir() string {
	return c.dir
}

// SaveUpload persists an uploaded file under a timestamp-prefixed name and
// returns its public path.
func (c *Cache) SaveUpload(file io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(originalName))
	if err := os.WriteFile(filepath.Join(c.dir, filename), data, 0o640); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return PublicPrefix + filename, nil
}

// EnsureLocal returns the public path for filename, fetching remoteURL on a
// cache miss. A non-empty file on disk is a hit and skips the network. Fetch
// or write failures are logged and reported as unresolved, never as an
// error. There is no locking between the existence check and the write; two
// concurrent misses both fetch and the second whole-file write wins, which
// only matters during sequential seeding where it cannot happen.
func (c *Cache) EnsureLocal(filename, remoteURL string) Resolution {
	localPath := filepath.Join(c.dir, filepath.Base(filename))
	publicPath := PublicPrefix + filepath.Base(filename)

	if info, err := os.Stat(localPath); err == nil && info.Size() > 0 {
		return Resolution{PublicPath: publicPath, Resolved: true}
	}

	slog.Info("downloading asset", "filename", filename, "url", remoteURL)

	resp, err := c.httpClient.Get(remoteURL)
	if err != nil {
		slog.Error("asset fetch failed", "filename", filename, "error", err)
		return Resolution{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("asset fetch failed", "filename", filename, "status", resp.StatusCode)
		return Resolution{}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("asset read failed", "filename", filename, "error", err)
		return Resolution{}
	}

	if err := os.WriteFile(localPath, data, 0o640); err != nil {
		slog.Error("asset write failed", "filename", filename, "error", err)
		return Resolution{}
	}

	return Resolution{PublicPath: publicPath, Resolved: true}
}
