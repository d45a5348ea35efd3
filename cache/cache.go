package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang/glog"
)

const (
	// A crashed lock holder must not block the system forever, so locks
	// expire. Within the TTL the lock is exclusive; beyond it the guarantee
	// is best-effort only.
	lockTTL int32 = 30 // seconds

	lockPollInterval = 25 * time.Millisecond
)

// Client wraps a memcached connection as a byte-oriented key/value store
// with a named mutual-exclusion primitive. It is the caller's
// responsibility (usually main.go shortly after reading the config file)
// to construct this and hand it to the components that need it.
type Client struct {
	mc *memcache.Client
}

// New creates a cache client for the memcached instance at host:port.
func New(host string, port int64) *Client {
	return &Client{mc: memcache.New(fmt.Sprintf("%s:%d", host, port))}
}

// GetBytes returns the value stored under key, if the key is in the cache.
func (c *Client) GetBytes(key string) ([]byte, bool) {
	item, err := c.mc.Get(key)
	if err != nil {
		// Cache misses are expected, but other errors are logged.
		if err != memcache.ErrCacheMiss {
			glog.Warningf("mc.Get(%q) %+v", key, err)
		}
		return nil, false
	}
	return item.Value, true
}

// SetBytes stores value under key. Entries written here never expire;
// eviction is the store's concern, not ours.
func (c *Client) SetBytes(key string, value []byte) {
	err := c.mc.Set(&memcache.Item{Key: key, Value: value})
	if err != nil {
		glog.Errorf("mc.Set(%q) %+v", key, err)
	}
}

// Lock acquires the named lock, blocking until it is available or ctx is
// done. It is built on memcached Add, which succeeds only when the key is
// absent. The returned release func must be called on every exit path.
func (c *Client) Lock(ctx context.Context, name string) (func(), error) {
	for {
		err := c.mc.Add(&memcache.Item{
			Key:        name,
			Value:      []byte{1},
			Expiration: lockTTL,
		})
		switch err {
		case nil:
			return func() {
				if err := c.mc.Delete(name); err != nil && err != memcache.ErrCacheMiss {
					glog.Warningf("mc.Delete(%q) %+v", name, err)
				}
			}, nil
		case memcache.ErrNotStored:
			// Held by another caller; poll until released.
		default:
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}
