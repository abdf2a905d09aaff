package lookup

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// resultCache maps exact queries to backend results.
type resultCache interface {
	Get(query string) (domain.SearchResult, bool)
	Add(query string, result domain.SearchResult)
	Len() int
}

// newCache returns an LRU cache holding size entries, or an unbounded map
// when size is zero.
func newCache(size int) resultCache {
	if size <= 0 {
		return &mapCache{entries: make(map[string]domain.SearchResult)}
	}
	c, err := lru.New[string, domain.SearchResult](size)
	if err != nil {
		// Only reachable with a non-positive size.
		return &mapCache{entries: make(map[string]domain.SearchResult)}
	}
	return &lruCache{lru: c}
}

type lruCache struct {
	lru *lru.Cache[string, domain.SearchResult]
}

func (c *lruCache) Get(query string) (domain.SearchResult, bool) {
	return c.lru.Get(query)
}

func (c *lruCache) Add(query string, result domain.SearchResult) {
	c.lru.Add(query, result)
}

func (c *lruCache) Len() int {
	return c.lru.Len()
}

type mapCache struct {
	entries map[string]domain.SearchResult
}

func (c *mapCache) Get(query string) (domain.SearchResult, bool) {
	r, ok := c.entries[query]
	return r, ok
}

func (c *mapCache) Add(query string, result domain.SearchResult) {
	c.entries[query] = result
}

func (c *mapCache) Len() int {
	return len(c.entries)
}
