package storage

import "time"

// Option configures a Put call.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	tenant      string
	contentType string
	filename    string
	acl         ACL
	rules       []ValidationRule
}

func newPutOptions(defaultACL ACL, opts []Option) *putOptions {
	o := &putOptions{acl: defaultACL}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithKey stores the file under an explicit key instead of a generated one.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix adds a path segment after the tenant: "{tenant}/{prefix}/{ulid}.{ext}".
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithTenant makes the tenant ID the first path segment of generated keys.
func WithTenant(id string) Option {
	return func(o *putOptions) {
		o.tenant = id
	}
}

// WithContentType skips content sniffing and uses ct.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithFilename records the original file name. S3 stores it as the
// object's Content-Disposition so downloads keep the client's name.
func WithFilename(name string) Option {
	return func(o *putOptions) {
		o.filename = name
	}
}

// WithACL overrides Config.DefaultACL for one upload.
func WithACL(acl ACL) Option {
	return func(o *putOptions) {
		o.acl = acl
	}
}

// WithValidation checks the upload before it is stored.
// The first failing rule aborts Put with a *FileValidationError.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) {
		o.rules = append(o.rules, rules...)
	}
}

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	downloadName string
	expiry       time.Duration
	public       bool
}

// WithExpiry sets the lifetime of a signed URL.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithDownload makes the signed URL download the file as filename.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) {
		o.downloadName = filename
	}
}

// WithPublic returns the unsigned public URL. It only resolves for files
// stored with ACLPublicRead or in a public bucket.
func WithPublic() URLOption {
	return func(o *urlOptions) {
		o.public = true
	}
}
