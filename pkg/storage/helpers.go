package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/deliverkit/pkg/id"
)

// PutBytes stores an in-memory payload, such as a bound attachment's data.
// filename is recorded as the download name when non-empty.
func PutBytes(ctx context.Context, s Storage, data []byte, filename string, opts ...Option) (*FileInfo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if filename != "" {
		opts = append([]Option{WithFilename(filename)}, opts...)
	}
	return s.Put(ctx, bytes.NewReader(data), int64(len(data)), opts...)
}

// prepareBody resolves the content type, runs validation rules and returns
// a seekable body for backends that need to rewind.
func prepareBody(r io.Reader, size int64, o *putOptions) (string, io.ReadSeeker, error) {
	if size <= 0 {
		return "", nil, ErrEmptyFile
	}

	var (
		contentType string
		body        io.ReadSeeker
		err         error
	)
	if o.contentType != "" {
		contentType = o.contentType
		if rs, ok := r.(io.ReadSeeker); ok {
			body = rs
		} else {
			var data []byte
			data, err = io.ReadAll(r)
			body = bytes.NewReader(data)
		}
	} else {
		contentType, body, err = sniffReader(r)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	if err := ValidateReader(size, contentType, o.rules...); err != nil {
		return "", nil, err
	}
	return contentType, body, nil
}

// objectKey returns the explicit key or generates "{tenant}/{prefix}/{ulid}{ext}".
func objectKey(o *putOptions, contentType string) string {
	if o.key != "" {
		return o.key
	}

	var parts []string
	if o.tenant != "" {
		parts = append(parts, sanitizePathSegment(o.tenant))
	}
	if o.prefix != "" {
		parts = append(parts, sanitizePathSegment(o.prefix))
	}

	ext := ExtFromMIME(contentType)
	if ext == "" {
		ext = ".bin"
	}
	return strings.Join(append(parts, id.NewULID()+ext), "/")
}

func contentDisposition(filename string) string {
	if filename == "" {
		return ""
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment strips traversal sequences and unsafe characters from
// a key segment.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = unsafePathChars.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}
