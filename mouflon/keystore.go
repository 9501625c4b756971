package mouflon

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// minEntryLen rejects obviously truncated key material in operator files.
const minEntryLen = 8

// legacyKeyIDPrefix marks the deprecated key-id naming convention still
// observed on older manifests. Resolve tries these first when the
// advertised key-id has no exact match; this is a heuristic, not a
// protocol guarantee.
const legacyKeyIDPrefix = "Zee"

// fallbackKeys ships with the binary so decryption keeps working when
// neither an operator key file nor a cache is present.
var fallbackKeys = map[string]string{
	"Zeechoej4aleeshi": "ubahjae7goPoodi6",
}

// KeyStore holds the merged key-id to decode-key view. Sources are
// merged once, in ascending precedence: built-in fallback entries, the
// persisted cache, then the operator key file.
type KeyStore struct {
	keysFile  string
	cacheFile string

	mu     sync.RWMutex
	keys   map[string]string
	loaded bool
}

func NewKeyStore(keysFile, cacheFile string) *KeyStore {
	return &KeyStore{
		keysFile:  keysFile,
		cacheFile: cacheFile,
	}
}

// Load populates the store. It is idempotent: every call after the
// first is a no-op, so concurrent or repeated triggers are safe. A
// missing or malformed source contributes nothing and is never fatal.
func (store *KeyStore) Load() {
	store.mu.Lock()
	if store.loaded {
		store.mu.Unlock()
		return
	}
	merged := make(map[string]string, len(fallbackKeys))
	for id, key := range fallbackKeys {
		merged[id] = key
	}
	cached := readKeyFile(store.cacheFile)
	for id, key := range cached {
		merged[id] = key
	}
	for id, key := range readKeyFile(store.keysFile) {
		merged[id] = key
	}
	store.keys = merged
	store.loaded = true

	stale := len(merged) != len(cached)
	if !stale {
		for id, key := range merged {
			if cached[id] != key {
				stale = true
				break
			}
		}
	}
	var snapshot map[string]string
	if stale {
		snapshot = snapshotKeys(merged)
	}
	store.mu.Unlock()

	// cache write happens outside the lock; best effort only
	if snapshot != nil {
		store.persist(snapshot)
	}
}

// Resolve returns the decode key for keyID. With no exact match it
// falls back to a best guess from the configured entries, because the
// origin does not always advertise the key-id actually in force; a
// clean decode downstream is the caller's confirmation of the guess.
// It reports false only when the merged key set is empty.
func (store *KeyStore) Resolve(keyID string) (string, bool) {
	store.Load()
	store.mu.RLock()
	defer store.mu.RUnlock()
	if key, ok := store.keys[keyID]; ok {
		return key, true
	}
	if len(store.keys) == 0 {
		return "", false
	}
	for id, key := range store.keys {
		if strings.HasPrefix(id, legacyKeyIDPrefix) {
			return key, true
		}
	}
	for _, key := range store.keys {
		return key, true
	}
	return "", false
}

// Put records a newly discovered pair and persists the merged set.
func (store *KeyStore) Put(keyID, decodeKey string) {
	store.Load()
	store.mu.Lock()
	if store.keys[keyID] == decodeKey {
		store.mu.Unlock()
		return
	}
	store.keys[keyID] = decodeKey
	snapshot := snapshotKeys(store.keys)
	store.mu.Unlock()

	store.persist(snapshot)
}

// Len reports the number of merged entries.
func (store *KeyStore) Len() int {
	store.Load()
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.keys)
}

func snapshotKeys(keys map[string]string) map[string]string {
	snapshot := make(map[string]string, len(keys))
	for id, key := range keys {
		snapshot[id] = key
	}
	return snapshot
}

func (store *KeyStore) persist(keys map[string]string) {
	if store.cacheFile == "" {
		return
	}
	data, err := json.Marshal(keys)
	if err != nil {
		zap.S().Warnf("failed to encode key cache: %v", err)
		return
	}
	tmp := store.cacheFile + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		zap.S().Warnf("failed to write key cache: %v", err)
		return
	}
	if err := os.Rename(tmp, store.cacheFile); err != nil {
		zap.S().Warnf("failed to replace key cache: %v", err)
		os.Remove(tmp)
	}
}

// readKeyFile accepts either a single {"pkey": ..., "pdkey": ...} pair
// or a mapping of key-id to decode-key. Entries with a short id or key
// are skipped; a missing or unparsable file contributes nothing.
func readKeyFile(path string) map[string]string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.S().Warnf("failed to read key file %s: %v", path, err)
		}
		return nil
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		zap.S().Warnf("ignoring malformed key file %s: %v", path, err)
		return nil
	}
	keys := make(map[string]string, len(raw))
	if id, ok := raw["pkey"]; ok && len(raw) == 2 {
		if key, ok := raw["pdkey"]; ok {
			if validEntry(id, key) {
				keys[id] = key
			} else {
				zap.S().Warnf("skipping malformed key pair in %s", path)
			}
			return keys
		}
	}
	for id, key := range raw {
		if !validEntry(id, key) {
			zap.S().Warnf("skipping malformed key entry %q in %s", id, path)
			continue
		}
		keys[id] = key
	}
	return keys
}

func validEntry(keyID, decodeKey string) bool {
	return len(keyID) >= minEntryLen && len(decodeKey) >= minEntryLen
}
