// Package imagecache is a two-tier (memory + disk) cache for remote card
// images. Downloads are de-duplicated per cache key, bounded to a fixed
// number of concurrent fetches, and retried with exponential backoff.
//
// All shared state (memory tier, in-flight registry) lives behind one mutex
// so "check cache, else attach to the running download, else start one" is
// atomic with respect to concurrent callers.
package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
	"github.com/hexzhou/ygocdb/internal/retry"
)

// ErrDownloadFailed marks a failed asset download. Every waiter attached to
// the same download receives the same error.
var ErrDownloadFailed = errors.New("image download failed")

const (
	// Memory tier bounds.
	maxMemoryEntries = 200
	maxMemoryBytes   = 100 * 1024 * 1024

	retryAttempts = 2
	retryBackoff  = 100 * time.Millisecond
)

// downloadTask is the single in-flight fetch for one cache key. Callers that
// find an existing task attach to it and wait on done.
type downloadTask struct {
	done chan struct{}
	data []byte
	err  error
}

func (t *downloadTask) wait(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.data, t.err
	}
}

type Cache struct {
	log    zerolog.Logger
	client *http.Client
	dir    string

	mu       sync.Mutex
	mem      *lru.Cache[string, []byte]
	memBytes int64
	inflight map[string]*downloadTask

	// slots bounds the number of concurrently running downloads. A task
	// waiting to send does not occupy a slot.
	slots  chan struct{}
	policy retry.Policy
}

// New creates the cache and its disk tier directory.
func New(log zerolog.Logger, cfg *domain.Config, dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create image cache directory")
	}

	c := &Cache{
		log: log.With().Str("module", "imagecache").Logger(),
		client: &http.Client{
			Transport: &userAgentTransport{UserAgent: cfg.UserAgent},
			Timeout:   cfg.RequestTimeout(),
		},
		dir:      dir,
		inflight: make(map[string]*downloadTask),
		slots:    make(chan struct{}, cfg.MaxConcurrentDownloads),
		policy: retry.Policy{
			MaxRetries: retryAttempts,
			Delay:      retry.Backoff(retryBackoff),
		},
	}

	// The eviction callback runs while c.mu is held by the caller mutating
	// the LRU, so it only adjusts the byte counter.
	mem, err := lru.NewWithEvict[string, []byte](maxMemoryEntries, func(_ string, data []byte) {
		c.memBytes -= int64(len(data))
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create memory tier")
	}
	c.mem = mem

	return c, nil
}

type userAgentTransport struct {
	Transport http.RoundTripper
	UserAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Transport == nil {
		t.Transport = http.DefaultTransport
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	return t.Transport.RoundTrip(req)
}

// Get checks the cache tiers only, never the network. A disk hit is promoted
// into the memory tier. A pure miss returns (nil, false).
func (c *Cache) Get(rawURL string) ([]byte, bool) {
	key := CacheKey(rawURL)

	c.mu.Lock()
	if data, ok := c.mem.Get(key); ok {
		c.mu.Unlock()
		return data, true
	}
	c.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil || len(data) == 0 {
		return nil, false
	}

	c.mu.Lock()
	c.insertMemory(key, data)
	c.mu.Unlock()
	return data, true
}

// FetchAndCache resolves an asset through memory, disk and finally the
// network. Concurrent calls for the same key share one download.
func (c *Cache) FetchAndCache(ctx context.Context, rawURL string) ([]byte, error) {
	key := CacheKey(rawURL)

	if data, ok := c.Get(rawURL); ok {
		return data, nil
	}

	c.mu.Lock()
	// Re-check under the lock: another caller may have finished meanwhile.
	if data, ok := c.mem.Get(key); ok {
		c.mu.Unlock()
		return data, nil
	}
	if task, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return task.wait(ctx)
	}

	task := &downloadTask{done: make(chan struct{})}
	c.inflight[key] = task
	c.mu.Unlock()

	go c.run(task, key, rawURL)

	return task.wait(ctx)
}

// run performs the download for one task: wait for a slot, fetch with retry,
// persist to disk (best-effort), insert into memory, release the slot, then
// deregister. Only after all of that do waiters wake up, so late arrivals
// attached to the registry always see the finished result.
func (c *Cache) run(task *downloadTask, key, rawURL string) {
	// The task outlives its originating caller, so it runs on its own
	// deadline covering every retry attempt.
	ctx, cancel := context.WithTimeout(context.Background(), (retryAttempts+1)*c.client.Timeout+time.Minute)
	defer cancel()

	c.slots <- struct{}{}

	data, err := c.download(ctx, rawURL)
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("image download failed")
		task.err = err
	} else {
		if werr := os.WriteFile(filepath.Join(c.dir, key), data, 0644); werr != nil {
			// Disk tier is best-effort; the asset just won't survive
			// beyond the memory tier.
			c.log.Warn().Err(werr).Str("key", key).Msg("failed to persist image to disk tier")
		}
		c.mu.Lock()
		c.insertMemory(key, data)
		c.mu.Unlock()
		task.data = data
	}

	<-c.slots

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	close(task.done)
}

func (c *Cache) download(ctx context.Context, rawURL string) ([]byte, error) {
	var data []byte

	err := c.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to create request")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return pkgerrors.Wrap(ErrDownloadFailed, err.Error())
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return pkgerrors.Wrapf(ErrDownloadFailed, "status code %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return pkgerrors.Wrap(ErrDownloadFailed, err.Error())
		}
		if len(body) == 0 {
			return pkgerrors.Wrap(ErrDownloadFailed, "empty payload")
		}

		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// insertMemory adds data to the memory tier and evicts oldest entries until
// the byte budget holds again. Callers hold c.mu.
func (c *Cache) insertMemory(key string, data []byte) {
	if prev, ok := c.mem.Peek(key); ok {
		c.memBytes -= int64(len(prev))
	}
	c.mem.Add(key, data)
	c.memBytes += int64(len(data))

	for c.memBytes > maxMemoryBytes && c.mem.Len() > 1 {
		c.mem.RemoveOldest()
	}
}

// Clear empties the memory tier and recreates the disk tier directory.
func (c *Cache) Clear() error {
	c.mu.Lock()
	c.mem.Purge()
	c.memBytes = 0
	c.mu.Unlock()

	if err := os.RemoveAll(c.dir); err != nil {
		return pkgerrors.Wrap(err, "failed to remove image cache directory")
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return pkgerrors.Wrap(err, "failed to recreate image cache directory")
	}

	c.log.Info().Msg("image cache cleared")
	return nil
}

// Size reports the disk tier's total byte size.
func (c *Cache) Size() int64 {
	var size int64
	filepath.WalkDir(c.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			size += info.Size()
		}
		return nil
	})
	return size
}

// FormattedSize renders the disk tier size for display.
func (c *Cache) FormattedSize() string {
	size := c.Size()
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%d B", size)
}
