package deliverable

import "time"

// Config controls the deliverable pipeline. Parsed with envPrefix "DELIVERABLE_".
type Config struct {
	// UploadConcurrency bounds parallel attachment uploads per deliverable.
	UploadConcurrency int `env:"UPLOAD_CONCURRENCY" envDefault:"4"`

	// RequireAllFiles fails Create when a declared attachment has no upload.
	RequireAllFiles bool `env:"REQUIRE_ALL_FILES" envDefault:"false"`

	// AttachToEmail sends uploaded files as email attachments in addition
	// to the download links.
	AttachToEmail bool `env:"ATTACH_TO_EMAIL" envDefault:"false"`

	// MaxFileSize rejects larger attachments at upload time.
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"26214400"`

	// StoragePrefix is the first key segment for uploaded attachments.
	StoragePrefix string `env:"STORAGE_PREFIX" envDefault:"deliverables"`

	// DefaultTemplate is the mailer template used when a request has no
	// inline template.
	DefaultTemplate string `env:"DEFAULT_TEMPLATE" envDefault:"deliverable.md"`

	// LinkExpiry is the lifetime of attachment download links.
	LinkExpiry time.Duration `env:"LINK_EXPIRY" envDefault:"168h"`
}

func (c *Config) applyDefaults() {
	if c.UploadConcurrency <= 0 {
		c.UploadConcurrency = 4
	}
	if c.StoragePrefix == "" {
		c.StoragePrefix = "deliverables"
	}
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = "deliverable.md"
	}
	if c.LinkExpiry <= 0 {
		c.LinkExpiry = 7 * 24 * time.Hour
	}
}
