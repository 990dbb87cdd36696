package mcp

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/cmakedox/pkg/types"
)

// DefaultCacheSize is the number of conversions kept in memory
const DefaultCacheSize = 256

// cachedConversion is a finished conversion of one script
type cachedConversion struct {
	text   string
	result types.ConversionResult
}

// conversionCache keeps recent in-memory conversions keyed by file name and
// content, so repeated requests for an unchanged script skip the parser
type conversionCache struct {
	cache *lru.Cache[[32]byte, *cachedConversion]
}

func newConversionCache(maxLen int) *conversionCache {
	if maxLen <= 0 {
		maxLen = DefaultCacheSize
	}
	cache, err := lru.New[[32]byte, *cachedConversion](maxLen)
	if err != nil {
		cache, _ = lru.New[[32]byte, *cachedConversion](DefaultCacheSize)
	}
	return &conversionCache{cache: cache}
}

// cacheKey hashes the file name and content. The name matters because it
// sets the group id.
func cacheKey(fileName, content string) [32]byte {
	h := sha256.New()
	h.Write([]byte(fileName))
	h.Write([]byte{0})
	h.Write([]byte(content))

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *conversionCache) get(key [32]byte) (*cachedConversion, bool) {
	return c.cache.Get(key)
}

func (c *conversionCache) add(key [32]byte, conv *cachedConversion) {
	c.cache.Add(key, conv)
}

func (c *conversionCache) size() int {
	return c.cache.Len()
}
