package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"sync"
)

// MemoryStorage keeps files in process memory. It backs local development
// and tests; contents are lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	acl     ACL
}

type memoryObject struct {
	data []byte
	info FileInfo
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemory creates a MemoryStorage. URLs are baseURL + "/" + key;
// an empty baseURL yields "memory://" URLs.
func NewMemory(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://"
	}
	return &MemoryStorage{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		acl:     ACLPrivate,
	}
}

// Put stores a copy of r's contents.
func (m *MemoryStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := newPutOptions(m.acl, opts)
	contentType, body, err := prepareBody(r, size, o)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, err
	}

	info := FileInfo{
		Key:         objectKey(o, contentType),
		Name:        o.filename,
		ContentType: contentType,
		ACL:         o.acl,
		Size:        int64(buf.Len()),
	}

	m.mu.Lock()
	m.objects[info.Key] = memoryObject{data: buf.Bytes(), info: info}
	m.mu.Unlock()

	return &info, nil
}

// Get returns a reader over a stored file.
func (m *MemoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// Delete removes a stored file.
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

// URL returns baseURL/key. WithDownload adds a "download" query parameter.
func (m *MemoryStorage) URL(ctx context.Context, key string, opts ...URLOption) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}

	o := &urlOptions{}
	for _, opt := range opts {
		opt(o)
	}

	u := m.baseURL + "/" + key
	if o.downloadName != "" {
		u += "?" + url.Values{"download": {o.downloadName}}.Encode()
	}
	return u, nil
}

// Stat returns the metadata of a stored file.
func (m *MemoryStorage) Stat(key string) (FileInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.info, ok
}

// Len returns the number of stored files.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Ping always succeeds.
func (m *MemoryStorage) Ping(context.Context) error {
	return nil
}
