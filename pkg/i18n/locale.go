package i18n

import (
	"time"

	"golang.org/x/text/language"
)

// LocaleFormat holds date and time layouts for a locale.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	tag            language.Tag
	dateFormat     string
	timeFormat     string
	dateTimeFormat string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a LocaleFormat. Without options it formats like en-US.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		tag:            language.AmericanEnglish,
		dateFormat:     "01/02/2006",
		timeFormat:     "3:04 PM",
		dateTimeFormat: "01/02/2006 3:04 PM",
	}
	for _, opt := range opts {
		opt(lf)
	}
	return lf
}

// WithTag sets the BCP 47 tag the format belongs to.
func WithTag(tag language.Tag) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.tag = tag
	}
}

// WithDateFormat sets the date layout.
func WithDateFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat = layout
	}
}

// WithTimeFormat sets the time layout.
func WithTimeFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeFormat = layout
	}
}

// WithDateTimeFormat sets the combined date and time layout.
func WithDateTimeFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeFormat = layout
	}
}

// Tag returns the locale tag.
func (lf *LocaleFormat) Tag() language.Tag { return lf.tag }

// FormatDate formats t with the locale's date layout.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

// FormatTime formats t with the locale's time layout.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeFormat)
}

// FormatDateTime formats t with the locale's date and time layout.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeFormat)
}
