package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/deliverkit"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

// FilesHandler serves stored attachments by key. It backs the links of the
// memory storage driver; S3 links point at the bucket directly.
//
// Memory links carry no signature and do not expire, so the LinkExpiry
// setting only applies to S3 presigned URLs. Use the memory driver for
// development only.
type FilesHandler struct {
	store storage.Storage
}

// stater is implemented by drivers that keep the metadata recorded at Put.
type stater interface {
	Stat(key string) (storage.FileInfo, bool)
}

// NewFilesHandler creates a FilesHandler.
func NewFilesHandler(store storage.Storage) *FilesHandler {
	return &FilesHandler{store: store}
}

// Routes implements deliverkit.Handler.
func (h *FilesHandler) Routes(r deliverkit.Router) {
	r.GET("/files/*", h.get)
}

func (h *FilesHandler) get(c deliverkit.Context) error {
	key := c.Param("*")
	rc, err := h.store.Get(c.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		return deliverkit.NewHTTPError(http.StatusNotFound, "file not found")
	}
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	contentType := h.contentType(key)
	name := c.Query("download")
	if name != "" || !inlineSafe(contentType) {
		if name == "" {
			name = path.Base(key)
		}
		c.SetHeader("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	c.SetHeader("X-Content-Type-Options", "nosniff")
	return c.Blob(http.StatusOK, contentType, data)
}

// contentType returns the type recorded when the file was stored. The body
// is never sniffed again.
func (h *FilesHandler) contentType(key string) string {
	if s, ok := h.store.(stater); ok {
		if info, ok := s.Stat(key); ok && info.ContentType != "" {
			return info.ContentType
		}
	}
	return "application/octet-stream"
}

// inlineSafe reports whether a browser may render contentType in place.
func inlineSafe(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}
