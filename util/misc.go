package util

import (
	"crypto/rand"
	"net/http"
	"os"
	"strings"
	"sync"

	"camwatch/config"

	"github.com/aki237/nscjar"
	"go.uber.org/zap"
)

// Uniq returns a random lowercase alphanumeric token, used as a
// cache-buster on status endpoints.
func Uniq(length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	const lettersLen = byte(len(letters))
	const maxByte = 255 - (255 % lettersLen)

	result := make([]byte, length)
	i := 0
	for i < length {
		b := make([]byte, 1)
		_, err := rand.Read(b)
		if err != nil {
			return strings.Repeat("a", length)
		}
		if b[0] > maxByte {
			continue // avoid bias
		}
		result[i] = letters[b[0]%lettersLen]
		i++
	}
	return string(result)
}

var (
	sessionCookies     []*http.Cookie
	sessionCookiesOnce sync.Once
)

// SessionCookies loads the configured Netscape-format cookie file once
// and returns its cookies, or nil when no file is configured.
func SessionCookies() []*http.Cookie {
	sessionCookiesOnce.Do(func() {
		if config.Env.CookiesFile == "" {
			return
		}
		cookieFile, err := os.Open(config.Env.CookiesFile)
		if err != nil {
			zap.S().Warnf("failed to open cookie file: %v", err)
			return
		}
		defer cookieFile.Close()

		var parser nscjar.Parser
		cookies, err := parser.Unmarshal(cookieFile)
		if err != nil {
			zap.S().Warnf("failed to parse cookie file: %v", err)
			return
		}
		sessionCookies = cookies
	})
	return sessionCookies
}
