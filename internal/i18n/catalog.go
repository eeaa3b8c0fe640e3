// Package i18n swaps the UI's strings between the source language and a
// target language, using static dictionaries, a persisted per-language cache,
// and a batch translation endpoint, in that order.
package i18n

import "sync"

// PlaceholderSuffix separates placeholder entries from text entries sharing a
// key, so a field label and its placeholder translate independently.
const PlaceholderSuffix = "::placeholder"

type entry struct {
	original string
	current  string
}

// Catalog tracks every translatable string: the original-language snapshot
// and whatever is currently displayed.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

func NewCatalog() *Catalog {
	return &Catalog{entries: map[string]*entry{}}
}

// Register snapshots the original text for key. Re-registering a key keeps
// the first snapshot so restore stays byte-exact.
func (c *Catalog) Register(key, original string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = &entry{original: original, current: original}
	c.order = append(c.order, key)
}

// RegisterPlaceholder snapshots a placeholder string under a suffixed key.
func (c *Catalog) RegisterPlaceholder(key, original string) {
	c.Register(key+PlaceholderSuffix, original)
}

// Text returns the currently displayed string for key, or the key itself when
// untracked, so a missing registration degrades visibly instead of blankly.
func (c *Catalog) Text(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.current
	}
	return key
}

// Placeholder returns the displayed placeholder for key.
func (c *Catalog) Placeholder(key string) string {
	return c.Text(key + PlaceholderSuffix)
}

// Original returns the snapshotted source-language string for key.
func (c *Catalog) Original(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.original, true
	}
	return "", false
}

// Keys returns the tracked keys in registration order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// RestoreOriginals resets every entry to its snapshot. Idempotent.
func (c *Catalog) RestoreOriginals() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.current = e.original
	}
}

func (c *Catalog) apply(key, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.current = translated
	}
}

// applyByOriginal sets the displayed string for every entry whose snapshot
// equals original. Multiple keys can share one original; a batch result has
// to reach all of them.
func (c *Catalog) applyByOriginal(original, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.original == original {
			e.current = translated
		}
	}
}
