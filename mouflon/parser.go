package mouflon

import "strings"

const (
	directivePrefix = "#EXT-X-MOUFLON:"
	filePrefix      = "#EXT-X-MOUFLON:FILE:"
	mapPrefix       = "#EXT-X-MAP:"
	partPrefix      = "#EXT-X-PART:"

	// placeholderName stands in for a concealed segment identifier
	// until the preceding FILE directive is decoded.
	placeholderName = "media.mp4"

	// DefaultScheme is assumed when a directive carries a key-id but
	// no scheme token.
	DefaultScheme = "v1"
)

type LineKind int

const (
	LineOpaque LineKind = iota
	LineEncryptionDirective
	LineConcealedPlaceholder
	LineResolvedFilename
	LineMapURI
	LinePartialSegmentURI
	LineBareURI
)

// Line is a single classified manifest line. Payload carries the
// encoded identifier for a concealed placeholder line.
type Line struct {
	Kind    LineKind
	Text    string
	Payload string
}

// Directive is the scheme and key-id in force for a manifest.
type Directive struct {
	Scheme string
	KeyID  string
}

// ParseManifest classifies every line of the document in order.
// Classification is purely lexical; pairing a decoded identifier with
// the next placeholder line is left to the caller.
func ParseManifest(doc string) []Line {
	lines := strings.Split(doc, "\n")
	parsed := make([]Line, 0, len(lines))
	for _, text := range lines {
		parsed = append(parsed, classifyLine(text))
	}
	return parsed
}

func classifyLine(text string) Line {
	switch {
	case strings.HasPrefix(text, filePrefix):
		return Line{
			Kind:    LineConcealedPlaceholder,
			Text:    text,
			Payload: text[len(filePrefix):],
		}
	case strings.HasPrefix(text, directivePrefix):
		return Line{Kind: LineEncryptionDirective, Text: text}
	case strings.HasPrefix(text, mapPrefix) && hasQuotedURI(text):
		return Line{Kind: LineMapURI, Text: text}
	case strings.HasPrefix(text, partPrefix) && hasQuotedURI(text):
		return Line{Kind: LinePartialSegmentURI, Text: text}
	case strings.HasSuffix(text, placeholderName):
		return Line{Kind: LineResolvedFilename, Text: text}
	case strings.HasPrefix(text, "https://"), strings.HasPrefix(text, "http://"):
		return Line{Kind: LineBareURI, Text: text}
	default:
		return Line{Kind: LineOpaque, Text: text}
	}
}

func hasQuotedURI(text string) bool {
	return strings.Contains(text, `URI="`)
}

// FindDirective returns the first encryption directive of the document.
// Directive lines are colon-delimited and need at least four fields for
// the scheme and key-id to be extracted; fewer fields means no
// directive, not an error. When a manifest carries several directives
// the first one wins for the whole document (observed origin behavior).
func FindDirective(doc string) (Directive, bool) {
	for _, text := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}
		parts := strings.Split(text, ":")
		if len(parts) < 4 {
			continue
		}
		scheme, keyID := parts[2], parts[3]
		if keyID == "" {
			continue
		}
		if scheme == "" {
			scheme = DefaultScheme
		}
		return Directive{Scheme: scheme, KeyID: keyID}, true
	}
	return Directive{}, false
}
