package internal

// ExtractorSource reads one candidate value from the request.
type ExtractorSource = func(Context) (string, bool)

// Extractor is an ordered chain of sources. The first non-empty value wins.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor builds a chain from sources, tried in the given order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value, or ("", false).
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads the named request header.
func FromHeader(name string) ExtractorSource {
	return present(func(c Context) string { return c.Header(name) })
}

// FromQuery reads the named query parameter, e.g. ?lang=de-DE.
func FromQuery(name string) ExtractorSource {
	return present(func(c Context) string { return c.Query(name) })
}

func present(read func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := read(c)
		return v, v != ""
	}
}
