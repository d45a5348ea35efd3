package config

import (
	"fmt"
	"time"

	conf "github.com/robfig/config"

	"github.com/benupsavs/growtherapy-takehome/models"
)

// DefaultConfigFilePath is the path to the config file
const DefaultConfigFilePath string = "/etc/topviews/api.conf"

// APISection is the [api] section of the config file
const APISection string = "api"

// Config file keys
const (
	ListenPort = "listen_port"

	MemcachedHost = "memcached_host"
	MemcachedPort = "memcached_port"

	WikipediaURL       = "wikipedia_url"
	WikipediaUserAgent = "wikipedia_user_agent"

	FetchConcurrency    = "fetch_concurrency"
	FetchTimeoutSeconds = "fetch_timeout_seconds"
)

// Settings holds the process-wide configuration. It is passed explicitly
// to the components that need it rather than read from package globals.
type Settings struct {
	ListenPort int64

	MemcachedHost string
	MemcachedPort int64

	WikipediaURL       string
	WikipediaUserAgent string

	FetchConcurrency int64
	FetchTimeout     time.Duration
}

// Load reads the [api] section of the named ini file. Connection details
// are required; the Wikipedia endpoint and fetch tuning have defaults.
func Load(path string) (Settings, error) {
	c, err := conf.ReadDefault(path)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		WikipediaURL:       models.DefaultWikipediaURL,
		WikipediaUserAgent: "topviews/1.0",
		FetchConcurrency:   8,
		FetchTimeout:       30 * time.Second,
	}

	for key, dst := range map[string]*int64{
		ListenPort:    &s.ListenPort,
		MemcachedPort: &s.MemcachedPort,
	} {
		v, err := c.Int(APISection, key)
		if err != nil {
			return Settings{}, fmt.Errorf("config key %s: %v", key, err)
		}
		*dst = int64(v)
	}

	s.MemcachedHost, err = c.String(APISection, MemcachedHost)
	if err != nil {
		return Settings{}, fmt.Errorf("config key %s: %v", MemcachedHost, err)
	}

	if v, err := c.String(APISection, WikipediaURL); err == nil && v != "" {
		s.WikipediaURL = v
	}
	if v, err := c.String(APISection, WikipediaUserAgent); err == nil && v != "" {
		s.WikipediaUserAgent = v
	}
	if v, err := c.Int(APISection, FetchConcurrency); err == nil && v > 0 {
		s.FetchConcurrency = int64(v)
	}
	if v, err := c.Int(APISection, FetchTimeoutSeconds); err == nil && v > 0 {
		s.FetchTimeout = time.Duration(v) * time.Second
	}

	return s, nil
}
