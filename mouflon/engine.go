package mouflon

import (
	"strings"

	"go.uber.org/zap"
)

// Outcome is the typed result of processing one manifest.
type Outcome string

const (
	// OutcomeUnmodified means no encryption directive was found and
	// the document passed through byte-identical.
	OutcomeUnmodified Outcome = "unmodified"
	// OutcomeRewritten means the manifest was decrypted and rewritten,
	// possibly partially when single segments failed to decode.
	OutcomeRewritten Outcome = "rewritten"
	// OutcomeDecryptionUnavailable means a directive was found but no
	// decode key exists; the caller may retry on the next poll.
	OutcomeDecryptionUnavailable Outcome = "decryption_unavailable"
)

// Engine ties the key store, decoder and rewriter together. It holds no
// per-call state: invocations may run concurrently and are always
// processed from scratch.
type Engine struct {
	store   *KeyStore
	decoder *Decoder
}

func NewEngine(store *KeyStore) *Engine {
	return &Engine{
		store:   store,
		decoder: NewDecoder(),
	}
}

// Process locates the manifest's encryption directive, resolves its
// decode key, decodes the concealed segment identifiers and rewrites
// the document for the delivery edge. A manifest without a directive is
// returned untouched. A segment that fails to decode is skipped and the
// rest of the document is still rewritten.
func (e *Engine) Process(doc string) (string, Outcome, error) {
	directive, found := FindDirective(doc)
	if !found {
		return doc, OutcomeUnmodified, nil
	}
	decodeKey, resolved := e.store.Resolve(directive.KeyID)
	if !resolved {
		zap.S().Warnf("no decode key for key-id %s", directive.KeyID)
		return doc, OutcomeDecryptionUnavailable, ErrKeyResolution
	}

	rewriter := NewRewriter(directive)
	lines := ParseManifest(doc)
	output := make([]string, 0, len(lines))

	var pending string
	var hasPending bool
	for _, line := range lines {
		switch line.Kind {
		case LineConcealedPlaceholder:
			identifier, err := e.decoder.Decode(line.Payload, decodeKey)
			if err != nil {
				// one bad segment must not block the playlist
				zap.S().Warnf("failed to decode concealed reference: %v", err)
				hasPending = false
				continue
			}
			pending, hasPending = identifier, true
		case LineResolvedFilename:
			text := line.Text
			if hasPending {
				text = rewriter.substitutePlaceholder(text, pending)
				hasPending = false
			}
			output = append(output, rewriter.AugmentURI(text))
		case LineBareURI:
			output = append(output, rewriter.AugmentURI(line.Text))
		case LineMapURI, LinePartialSegmentURI:
			output = append(output, rewriter.augmentQuotedURI(line.Text))
		default:
			output = append(output, line.Text)
		}
	}
	return strings.Join(output, "\n"), OutcomeRewritten, nil
}
