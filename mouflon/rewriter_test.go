package mouflon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDirective = Directive{Scheme: "v1", KeyID: "Zeechoej4aleeshi"}

func TestAugmentURIWithoutQuery(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	out := rewriter.AugmentURI("https://media-hls.doppiocdn.org/123/seg.mp4")
	assert.Equal(t,
		"https://media-hls.doppiocdn.org/123/seg.mp4?psch=v1&pkey=Zeechoej4aleeshi",
		out,
	)
}

func TestAugmentURIPreservesExistingQuery(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	out := rewriter.AugmentURI("https://edge-hls.doppiocdn.com/seg.mp4?b=2&a=1")
	assert.Equal(t,
		"https://edge-hls.doppiocdn.com/seg.mp4?b=2&a=1&psch=v1&pkey=Zeechoej4aleeshi",
		out,
	)
}

func TestAugmentURIIsIdempotent(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	once := rewriter.AugmentURI("https://edge-hls.doppiocdn.net/seg.mp4")
	twice := rewriter.AugmentURI(once)
	assert.Equal(t, once, twice)
}

func TestAugmentURIAddsOnlyMissingParameter(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	out := rewriter.AugmentURI("https://edge-hls.doppiocdn.org/seg.mp4?psch=v0")
	assert.Equal(t,
		"https://edge-hls.doppiocdn.org/seg.mp4?psch=v0&pkey=Zeechoej4aleeshi",
		out,
	)
}

func TestAugmentURILeavesForeignHostsAlone(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	for _, raw := range []string{
		"https://example.com/seg.mp4",
		"https://doppiocdn.live/seg.mp4",
		"https://notdoppiocdn.org.evil.com/seg.mp4",
		"relative/path/seg.mp4",
	} {
		assert.Equal(t, raw, rewriter.AugmentURI(raw), raw)
	}
}

func TestAugmentURIMatchesAllEdgeSuffixes(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	for _, raw := range []string{
		"https://edge-hls.doppiocdn.org/seg.mp4",
		"https://edge-hls.doppiocdn.com/seg.mp4",
		"https://b-hls-13.doppiocdn.net/seg.mp4",
	} {
		assert.NotEqual(t, raw, rewriter.AugmentURI(raw), raw)
	}
}

func TestAugmentQuotedURI(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	in := `#EXT-X-MAP:URI="https://media-hls.doppiocdn.org/init.mp4",BYTERANGE=100@0`
	out := rewriter.augmentQuotedURI(in)
	assert.Equal(t,
		`#EXT-X-MAP:URI="https://media-hls.doppiocdn.org/init.mp4?psch=v1&pkey=Zeechoej4aleeshi",BYTERANGE=100@0`,
		out,
	)
}

func TestAugmentQuotedURIWithoutAttribute(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	in := "#EXT-X-MAP:BYTERANGE=100@0"
	assert.Equal(t, in, rewriter.augmentQuotedURI(in))
}

func TestSubstitutePlaceholder(t *testing.T) {
	rewriter := NewRewriter(testDirective)
	out := rewriter.substitutePlaceholder(
		"https://media-hls.doppiocdn.org/123/media.mp4",
		"media_0f2aa6c13.mp4",
	)
	assert.Equal(t, "https://media-hls.doppiocdn.org/123/media_0f2aa6c13.mp4", out)
}
