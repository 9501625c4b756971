package stripchat

import (
	"camwatch/mouflon"
)

const (
	apiBase  = "https://stripchat.com/api/front"
	bulkBase = "https://hu.stripchat.com/api/front"

	uniqLength = 16
)

var (
	privateStatuses = map[string]bool{
		"private":        true,
		"groupShow":      true,
		"p2p":            true,
		"virtualPrivate": true,
		"p2pVoice":       true,
	}
	offlineStatuses = map[string]bool{
		"off":  true,
		"idle": true,
	}
)

// Client talks to the origin service: channel status lookups and
// playlist resolution. Manifest decryption goes through the injected
// mouflon engine.
type Client struct {
	engine *mouflon.Engine
}

func NewClient(engine *mouflon.Engine) *Client {
	return &Client{engine: engine}
}
