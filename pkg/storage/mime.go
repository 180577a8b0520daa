package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

const (
	MIMEOctetStream = "application/octet-stream"

	// http.DetectContentType looks at no more than 512 bytes.
	sniffLen = 512
)

var documentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/rtf",
	"text/plain",
	"text/csv",
}

var mimeExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/heic":    ".heic",
	"image/avif":    ".avif",

	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.ms-excel":                                                  ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.ms-powerpoint":                                             ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/rtf": ".rtf",
	"text/plain":      ".txt",
	"text/csv":        ".csv",
	"text/html":       ".html",

	"application/json": ".json",
	"application/xml":  ".xml",
	"application/zip":  ".zip",
	"application/gzip": ".gz",

	"video/mp4":  ".mp4",
	"video/webm": ".webm",
	"audio/mpeg": ".mp3",
	"audio/wav":  ".wav",
}

// DetectMIMEBytes sniffs the content type of data from its leading bytes.
// Empty input yields MIMEOctetStream.
func DetectMIMEBytes(data []byte) string {
	if len(data) == 0 {
		return MIMEOctetStream
	}
	return http.DetectContentType(data[:min(len(data), sniffLen)])
}

// DetectMIME sniffs the content type of the first bytes read from r.
func DetectMIME(r io.Reader) string {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if n == 0 && err != nil {
		return MIMEOctetStream
	}
	return DetectMIMEBytes(buf[:n])
}

// ExtFromMIME returns the preferred file extension for a content type,
// or "" when it is unknown.
func ExtFromMIME(mimeType string) string {
	return mimeExtensions[normalizeMIME(mimeType)]
}

// sniffReader detects the content type of r and returns a reader positioned
// at the start. The AWS SDK needs an io.ReadSeeker to hash the payload, so
// non-seekable input is buffered.
func sniffReader(r io.Reader) (string, io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		mime := DetectMIME(rs)
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return mime, rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	return DetectMIMEBytes(data), bytes.NewReader(data), nil
}

// normalizeMIME lowercases a content type and drops its parameters.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// matchesMIME reports whether mimeType matches one of the patterns.
// A pattern ending in "/*" matches the whole type family.
func matchesMIME(mimeType string, patterns []string) bool {
	mimeType = normalizeMIME(mimeType)
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == mimeType {
			return true
		}
		if family, ok := strings.CutSuffix(p, "*"); ok && strings.HasSuffix(family, "/") && strings.HasPrefix(mimeType, family) {
			return true
		}
	}
	return false
}
