package mouflon

import "github.com/pkg/errors"

var (
	// ErrKeyResolution means no decode key is available for any key-id;
	// the manifest cannot be played right now.
	ErrKeyResolution = errors.New("no decode key available")

	// ErrPayloadDecode reports malformed base64 in a concealed reference.
	ErrPayloadDecode = errors.New("malformed segment payload")

	// ErrTextDecode reports a decode that produced invalid UTF-8, which
	// usually means the wrong key was used.
	ErrTextDecode = errors.New("decoded identifier is not valid text")
)
