package stripchat

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"camwatch/enums"
	"camwatch/mouflon"
	"camwatch/util"

	"github.com/grafov/m3u8"
	"go.uber.org/zap"
)

// the edge rotates between three apex domains
var edgeDomains = []string{
	"doppiocdn.org",
	"doppiocdn.com",
	"doppiocdn.net",
}

type Variant struct {
	URL        string
	Bandwidth  uint32
	Resolution string
}

// MasterPlaylistURL builds the master playlist location for a stream.
// The VR role selects the _vr rendition; the live role requests the
// _auto variant ladder.
func MasterPlaylistURL(streamName string, role enums.HostRole) string {
	domain := edgeDomains[rand.Intn(len(edgeDomains))]
	name := streamName
	if role == enums.HostRoleVR {
		name += "_vr"
	}
	file := name
	if role != enums.HostRoleVR {
		file += "_auto"
	}
	return fmt.Sprintf(
		"https://edge-hls.%s/hls/%s/master/%s.m3u8",
		domain, name, file,
	)
}

// PlaylistVariants fetches the master playlist, runs it through the
// decryption engine and returns the selectable variants with their
// delivery-edge parameters attached.
func (c *Client) PlaylistVariants(
	ctx context.Context,
	streamName string,
	role enums.HostRole,
) ([]*Variant, error) {
	masterURL := MasterPlaylistURL(streamName, role)
	doc, err := util.FetchText(ctx, masterURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master playlist: %w", err)
	}
	rewritten, outcome, err := c.engine.Process(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to process master playlist: %w", err)
	}
	zap.S().Debugf("master playlist for %s: %s", streamName, outcome)

	playlist, listType, err := m3u8.DecodeFrom(strings.NewReader(rewritten), true)
	if err != nil {
		return nil, fmt.Errorf("failed to parse master playlist: %w", err)
	}
	master, ok := playlist.(*m3u8.MasterPlaylist)
	if listType != m3u8.MASTER || !ok {
		return nil, util.ErrNoVariants
	}

	baseURL, err := url.Parse(masterURL)
	if err != nil {
		return nil, fmt.Errorf("invalid master url: %w", err)
	}
	// relative variant URIs only acquire the edge host once resolved
	// against the master, so re-augment them here
	var rewriter *mouflon.Rewriter
	if directive, found := mouflon.FindDirective(doc); found {
		rewriter = mouflon.NewRewriter(directive)
	}

	variants := make([]*Variant, 0, len(master.Variants))
	for _, variant := range master.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		variantURL := resolveURL(baseURL, variant.URI)
		if rewriter != nil {
			variantURL = rewriter.AugmentURI(variantURL)
		}
		variants = append(variants, &Variant{
			URL:        variantURL,
			Bandwidth:  variant.Bandwidth,
			Resolution: variant.Resolution,
		})
	}
	if len(variants) == 0 {
		return nil, util.ErrNoVariants
	}
	return variants, nil
}

// BestVariant picks the highest-bandwidth rendition.
func BestVariant(variants []*Variant) *Variant {
	var best *Variant
	for _, variant := range variants {
		if best == nil || variant.Bandwidth > best.Bandwidth {
			best = variant
		}
	}
	return best
}

func resolveURL(base *url.URL, uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	if parsed.IsAbs() {
		return uri
	}
	return base.ResolveReference(parsed).String()
}
