package mouflon

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func swapFallbackKeys(t *testing.T, keys map[string]string) {
	t.Helper()
	previous := fallbackKeys
	fallbackKeys = keys
	t.Cleanup(func() { fallbackKeys = previous })
}

func TestLoadSinglePairShape(t *testing.T) {
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, keysFile, map[string]string{
		"pkey":  "AAAAAAAAAAAA",
		"pdkey": "BBBBBBBBBBBB",
	})

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	key, ok := store.Resolve("AAAAAAAAAAAA")
	require.True(t, ok)
	assert.Equal(t, "BBBBBBBBBBBB", key)
}

func TestLoadMultiPairShapeSkipsShortEntries(t *testing.T) {
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, keysFile, map[string]string{
		"Ohmaigh1eeloh8xa": "eiSh0hahb4aingie",
		"short":            "eiSh0hahb4aingie",
		"Aexoo2luad0weigh": "tiny",
	})

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	key, ok := store.Resolve("Ohmaigh1eeloh8xa")
	require.True(t, ok)
	assert.Equal(t, "eiSh0hahb4aingie", key)

	_, ok = store.Resolve("short")
	assert.True(t, ok, "fallback still answers, but not with the skipped entry")
	assert.Equal(t, 2, store.Len(), "fallback plus one valid operator entry")
}

func TestLoadPrecedenceOperatorOverCacheOverFallback(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "cache.json")
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, cacheFile, map[string]string{
		"Zeechoej4aleeshi": "cachedKey1234567",
	})
	writeJSON(t, keysFile, map[string]string{
		"Zeechoej4aleeshi": "operatorKey12345",
	})

	store := NewKeyStore(keysFile, cacheFile)
	key, ok := store.Resolve("Zeechoej4aleeshi")
	require.True(t, ok)
	assert.Equal(t, "operatorKey12345", key)
}

func TestLoadCacheOverridesFallback(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "cache.json")
	writeJSON(t, cacheFile, map[string]string{
		"Zeechoej4aleeshi": "cachedKey1234567",
	})

	store := NewKeyStore(filepath.Join(dir, "missing.json"), cacheFile)
	key, ok := store.Resolve("Zeechoej4aleeshi")
	require.True(t, ok)
	assert.Equal(t, "cachedKey1234567", key)
}

func TestLoadMalformedFileIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	require.NoError(t, os.WriteFile(keysFile, []byte("{not json"), 0644))

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	key, ok := store.Resolve("Zeechoej4aleeshi")
	require.True(t, ok, "fallback table still applies")
	assert.Equal(t, "ubahjae7goPoodi6", key)
}

func TestResolveFallsBackToLegacyPrefix(t *testing.T) {
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, keysFile, map[string]string{
		"Ohmaigh1eeloh8xa": "eiSh0hahb4aingie",
	})

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	// the advertised key-id is unknown; the legacy Zee-prefixed entry
	// (from the fallback table) is preferred over the operator one
	key, ok := store.Resolve("unknown-key-id")
	require.True(t, ok)
	assert.Equal(t, "ubahjae7goPoodi6", key)
}

func TestResolveAnyEntryWhenNoLegacyMatch(t *testing.T) {
	swapFallbackKeys(t, nil)
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, keysFile, map[string]string{
		"Ohmaigh1eeloh8xa": "eiSh0hahb4aingie",
	})

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	key, ok := store.Resolve("unknown-key-id")
	require.True(t, ok)
	assert.Equal(t, "eiSh0hahb4aingie", key)
}

func TestResolveEmptyStore(t *testing.T) {
	swapFallbackKeys(t, nil)
	dir := t.TempDir()

	store := NewKeyStore(
		filepath.Join(dir, "missing.json"),
		filepath.Join(dir, "cache.json"),
	)
	_, ok := store.Resolve("Zeechoej4aleeshi")
	assert.False(t, ok)
}

func TestLoadPersistsMergedSetToCache(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "cache.json")

	store := NewKeyStore(filepath.Join(dir, "missing.json"), cacheFile)
	store.Load()

	data, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	var persisted map[string]string
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "ubahjae7goPoodi6", persisted["Zeechoej4aleeshi"])
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	keysFile := filepath.Join(dir, "mouflon_keys.json")
	writeJSON(t, keysFile, map[string]string{
		"Ohmaigh1eeloh8xa": "eiSh0hahb4aingie",
	})

	store := NewKeyStore(keysFile, filepath.Join(dir, "cache.json"))
	store.Load()
	before := store.Len()

	// changing the file after the first load has no effect
	writeJSON(t, keysFile, map[string]string{
		"Ohmaigh1eeloh8xa": "eiSh0hahb4aingie",
		"Aexoo2luad0weigh": "aiNgeiph2OhGoo0t",
	})
	store.Load()
	assert.Equal(t, before, store.Len())
}

func TestPutPersistsNewPair(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "cache.json")

	store := NewKeyStore(filepath.Join(dir, "missing.json"), cacheFile)
	store.Put("Aexoo2luad0weigh", "aiNgeiph2OhGoo0t")

	key, ok := store.Resolve("Aexoo2luad0weigh")
	require.True(t, ok)
	assert.Equal(t, "aiNgeiph2OhGoo0t", key)

	data, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	var persisted map[string]string
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "aiNgeiph2OhGoo0t", persisted["Aexoo2luad0weigh"])
}
