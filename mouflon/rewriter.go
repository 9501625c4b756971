package mouflon

import (
	"net/url"
	"strings"
)

// edgeHostSuffixes enumerates the delivery edges that need the scheme
// and key-id echoed back as query parameters to serve decrypted media.
var edgeHostSuffixes = []string{
	"doppiocdn.org",
	"doppiocdn.com",
	"doppiocdn.net",
}

// Rewriter recombines classified lines into the output document,
// substituting decoded identifiers and tagging delivery-edge URIs with
// the directive's scheme and key-id.
type Rewriter struct {
	directive Directive
}

func NewRewriter(directive Directive) *Rewriter {
	return &Rewriter{directive: directive}
}

// AugmentURI appends psch and pkey to a delivery-edge URI. Each
// parameter is added only if absent; existing parameters keep their
// exact order and encoding. URIs to other hosts are returned unchanged.
func (rw *Rewriter) AugmentURI(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !isEdgeHost(parsed.Hostname()) {
		return raw
	}
	query := parsed.Query()
	var extra []string
	if !query.Has("psch") {
		extra = append(extra, "psch="+url.QueryEscape(rw.directive.Scheme))
	}
	if !query.Has("pkey") {
		extra = append(extra, "pkey="+url.QueryEscape(rw.directive.KeyID))
	}
	if len(extra) == 0 {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + strings.Join(extra, "&")
}

// augmentQuotedURI rewrites the URI="..." attribute of a tag line,
// leaving the rest of the line byte-identical.
func (rw *Rewriter) augmentQuotedURI(text string) string {
	start := strings.Index(text, `URI="`)
	if start == -1 {
		return text
	}
	start += len(`URI="`)
	end := strings.Index(text[start:], `"`)
	if end == -1 {
		return text
	}
	return text[:start] + rw.AugmentURI(text[start:start+end]) + text[start+end:]
}

// substitutePlaceholder swaps the fixed placeholder filename for the
// decoded identifier; every other path component stays untouched.
func (rw *Rewriter) substitutePlaceholder(text, identifier string) string {
	return strings.ReplaceAll(text, placeholderName, identifier)
}

func isEdgeHost(host string) bool {
	for _, suffix := range edgeHostSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
