package imageio

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Cache shares File handles between loads of the same path, so an icon set
// that repeats a file decodes it once. When the cache grows past its soft
// limit, the least recently opened quarter of the entries is dropped.
//
// Handles that failed are not reused; opening their path again retries.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	softLimit int
	tick      int64
}

type cacheEntry struct {
	file  *File
	atime int64
}

// NewCache returns an empty cache. A softLimit of zero means unlimited.
func NewCache(softLimit int) *Cache {
	return &Cache{
		entries:   make(map[string]*cacheEntry),
		softLimit: softLimit,
	}
}

// Open returns the cached handle for path, or starts loading it.
func (c *Cache) Open(ctx context.Context, path string) *File {
	f, fresh := c.lookup(path)
	if fresh {
		go f.load(ctx)
	}
	return f
}

// lookup returns the handle for path and reports whether it is new, in which
// case the caller must load it.
func (c *Cache) lookup(path string) (*File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[path]; ok && !failed(e.file) {
		e.atime = c.tick
		return e.file, false
	}

	f := newFile(path)
	c.entries[path] = &cacheEntry{file: f, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return f, true
}

func failed(f *File) bool {
	select {
	case <-f.done:
		return f.err != nil
	default:
		return false
	}
}

// LoadAll loads every path not already cached, with at most limit files
// decoding at once, and returns the handles in path order. It stops at the
// first failure and returns its error. A limit of zero or less means no
// limit.
func (c *Cache) LoadAll(ctx context.Context, paths []string, limit int) ([]*File, error) {
	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range paths {
		f, fresh := c.lookup(p)
		files[i] = f
		g.Go(func() error {
			if fresh {
				f.load(ctx)
			} else {
				<-f.done
			}
			return f.err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Forget drops path from the cache. It reports whether path was cached.
func (c *Cache) Forget(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[path]
	delete(c.entries, path)
	return ok
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest shrinks the cache to three quarters of its soft limit.
// Caller must hold c.mu.
func (c *Cache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		path  string
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for p, e := range c.entries {
		all = append(all, aged{p, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return int(a.atime - b.atime) })
	for _, e := range all[:n] {
		delete(c.entries, e.path)
	}
}
