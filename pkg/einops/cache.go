// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package einops

import (
	"github.com/gomlx/einops/pkg/core/shapes"
	"github.com/gomlx/einops/pkg/einops/pattern"
	"github.com/gomlx/einops/pkg/support/xsync"
	"k8s.io/klog/v2"
)

// Cache of compiled patterns, keyed by the pattern text and the names (not the values) of the
// given sizes.
//
// Entries are never evicted: patterns used by a program are few. Failed compilations are not cached.
// It is safe for concurrent use.
type Cache struct {
	patterns xsync.SyncMap[string, *pattern.Pattern]
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// DefaultCache is used by Rearrange, MustRearrange, PlanFor, and engines created without a cache.
var DefaultCache = NewCache()

// cacheKey is the pattern text plus the sorted size names.
func cacheKey(text string, sizes shapes.AxisBindings) string {
	return text + "|" + sizes.NamesKey()
}

// Compile returns the parsed pattern, validated against the names of the given sizes: all new
// axes must be given a size, and all given sizes must be used by the pattern.
// The values of sizes are not used.
func (c *Cache) Compile(text string, sizes shapes.AxisBindings) (*pattern.Pattern, error) {
	key := cacheKey(text, sizes)
	if p, found := c.patterns.Load(key); found {
		return p, nil
	}
	p, err := pattern.Parse(text)
	if err != nil {
		return nil, err
	}
	if err = p.CheckSizeNames(sizes.Names()); err != nil {
		return nil, err
	}
	klog.V(2).Infof("einops: compiled pattern %q (sizes given for %v)", text, sizes.Names())
	// If another goroutine compiled the same key concurrently, use its (identical) result.
	p, _ = c.patterns.LoadOrStore(key, p)
	return p, nil
}

// Len returns the number of compiled patterns in the cache.
func (c *Cache) Len() int { return c.patterns.Len() }

// Reset removes all compiled patterns from the cache.
func (c *Cache) Reset() { c.patterns.Clear() }
