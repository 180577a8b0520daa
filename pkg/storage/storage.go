package storage

import (
	"context"
	"io"
	"time"
)

// Storage stores attachment payloads.
type Storage interface {
	// Put uploads size bytes from r. Options set the key layout, ACL,
	// content type, download name and validation rules.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get opens a stored file. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, key string) error

	// URL returns a link to a stored file: signed by default, public with WithPublic.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Bucket     string `env:"BUCKET"`
	AccessKey  string `env:"ACCESS_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	Endpoint   string `env:"ENDPOINT"` // MinIO and other S3-compatible services
	Region     string `env:"REGION" envDefault:"us-east-1"`
	PublicURL  string `env:"PUBLIC_URL"` // CDN prefix for public files
	DefaultACL ACL    `env:"DEFAULT_ACL" envDefault:"private"`
	PathStyle  bool   `env:"PATH_STYLE" envDefault:"false"`

	// URLExpiry is the default lifetime of signed URLs.
	URLExpiry time.Duration `env:"URL_EXPIRY" envDefault:"15m"`
}

// FileInfo describes a stored file.
type FileInfo struct {
	Key         string
	Name        string // download name, if one was given
	ContentType string
	ACL         ACL
	Size        int64
}

// ACL is the access level of a stored file.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

// Default configuration values.
const (
	DefaultRegion    = "us-east-1"
	DefaultURLExpiry = 15 * time.Minute
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.DefaultACL == "" {
		c.DefaultACL = ACLPrivate
	}
	if c.URLExpiry <= 0 {
		c.URLExpiry = DefaultURLExpiry
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	switch c.DefaultACL {
	case ACLPrivate, ACLPublicRead:
	default:
		return ErrInvalidConfig
	}
	return nil
}
