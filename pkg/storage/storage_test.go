package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_applyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.applyDefaults()
	require.Equal(t, DefaultRegion, cfg.Region)
	require.Equal(t, ACLPrivate, cfg.DefaultACL)
	require.Equal(t, DefaultURLExpiry, cfg.URLExpiry)

	cfg = &Config{Region: "eu-west-1", DefaultACL: ACLPublicRead, URLExpiry: time.Hour}
	cfg.applyDefaults()
	require.Equal(t, "eu-west-1", cfg.Region)
	require.Equal(t, ACLPublicRead, cfg.DefaultACL)
	require.Equal(t, time.Hour, cfg.URLExpiry)
}

func TestConfig_validate(t *testing.T) {
	t.Parallel()

	valid := Config{Bucket: "b", AccessKey: "a", SecretKey: "s", DefaultACL: ACLPrivate}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing bucket", func(c *Config) { c.Bucket = "" }, false},
		{"missing access key", func(c *Config) { c.AccessKey = "" }, false},
		{"missing secret key", func(c *Config) { c.SecretKey = "" }, false},
		{"unknown acl", func(c *Config) { c.DefaultACL = "world-writable" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	store, err := New(Config{Bucket: "b", AccessKey: "a", SecretKey: "s", Endpoint: "http://localhost:9000", PathStyle: true})
	require.NoError(t, err)
	require.NotNil(t, store.client)
	require.NotNil(t, store.presigner)
	require.Equal(t, DefaultRegion, store.cfg.Region)

	store, err = New(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Nil(t, store)
}

func TestSanitizePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input, want string
	}{
		{"attachments", "attachments"},
		{"my folder", "my_folder"},
		{"/path/to/", "path_to"},
		{"../../../etc/passwd", "___etc_passwd"},
		{"file@#$%name", "file____name"},
		{"..hidden", "hidden"},
		{"файл", "____"},
		{"", ""},
		{"my-file_name.v2", "my-file_name.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sanitizePathSegment(tt.input))
		})
	}
}

func TestObjectKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []Option
		contentType string
		pattern     string
	}{
		{"bare", nil, "image/jpeg", `^[0-9A-Z]{26}\.jpg$`},
		{"prefix", []Option{WithPrefix("attachments")}, "image/png", `^attachments/[0-9A-Z]{26}\.png$`},
		{"tenant", []Option{WithTenant("acme")}, "application/pdf", `^acme/[0-9A-Z]{26}\.pdf$`},
		{"tenant and prefix", []Option{WithTenant("acme"), WithPrefix("invoices")}, "text/plain; charset=utf-8", `^acme/invoices/[0-9A-Z]{26}\.txt$`},
		{"unknown type", nil, "application/x-unknown", `^[0-9A-Z]{26}\.bin$`},
		{"explicit key", []Option{WithTenant("ignored"), WithKey("fixed/key.pdf")}, "application/pdf", `^fixed/key\.pdf$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := newPutOptions(ACLPrivate, tt.opts)
			require.Regexp(t, tt.pattern, objectKey(o, tt.contentType))
		})
	}
}

func TestS3Storage_publicURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"aws", Config{Bucket: "b", Region: "us-east-1"}, "https://b.s3.us-east-1.amazonaws.com/a/logo.png"},
		{"cdn", Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/a/logo.png"},
		{"path style", Config{Bucket: "b", Endpoint: "http://localhost:9000", PathStyle: true}, "http://localhost:9000/b/a/logo.png"},
		{"virtual host", Config{Bucket: "b", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/a/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &S3Storage{cfg: tt.cfg}
			require.Equal(t, tt.want, s.publicURL("a/logo.png"))
		})
	}
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	require.Empty(t, contentDisposition(""))
	require.Equal(t, `attachment; filename=logo.png`, contentDisposition("logo.png"))
	require.Equal(t, `attachment; filename="brand assets.pdf"`, contentDisposition("brand assets.pdf"))
}
