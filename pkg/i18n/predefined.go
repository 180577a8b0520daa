package i18n

import "golang.org/x/text/language"

// FormatEnUS returns the en-US format: MM/DD/YYYY, 12h clock.
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns the en-GB format: DD/MM/YYYY, 24h clock.
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.BritishEnglish),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatDeDE returns the de-DE format: DD.MM.YYYY, 24h clock.
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.MustParse("de-DE")),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatFrFR returns the fr-FR format: DD/MM/YYYY, 24h clock.
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.MustParse("fr-FR")),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatEsES returns the es-ES format: DD/MM/YYYY, 24h clock.
func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.MustParse("es-ES")),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatPlPL returns the pl-PL format: DD.MM.YYYY, 24h clock.
func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.MustParse("pl-PL")),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatJaJP returns the ja-JP format: YYYY/MM/DD, 24h clock.
func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithTag(language.MustParse("ja-JP")),
		WithDateFormat("2006/01/02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006/01/02 15:04"),
	)
}

// supported lists the negotiable formats. The first entry is the fallback.
var supported = []*LocaleFormat{
	FormatEnUS(),
	FormatEnGB(),
	FormatDeDE(),
	FormatFrFR(),
	FormatEsES(),
	FormatPlPL(),
	FormatJaJP(),
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, lf := range supported {
		tags[i] = lf.tag
	}
	return language.NewMatcher(tags)
}()

// Negotiate returns the supported format that best matches an
// Accept-Language header value. Empty or unmatched headers yield en-US.
func Negotiate(acceptLanguage string) *LocaleFormat {
	if acceptLanguage == "" {
		return supported[0]
	}
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	if idx < 0 || idx >= len(supported) {
		return supported[0]
	}
	return supported[idx]
}

// Lookup returns the supported format for an exact tag such as "de-DE".
func Lookup(tag string) (*LocaleFormat, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, false
	}
	for _, lf := range supported {
		if lf.tag == t {
			return lf, true
		}
	}
	return nil, false
}
