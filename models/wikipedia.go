package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/semaphore"

	"github.com/benupsavs/growtherapy-takehome/errors"
)

// DefaultWikipediaURL is the Wikimedia pageviews endpoint for the top
// articles on English Wikipedia across all access methods. The year,
// month and day path segments are appended per request.
const DefaultWikipediaURL = "https://wikimedia.org/api/rest_v1/metrics/pageviews/top/en.wikipedia/all-access"

// DaySource fetches the ranked article counts for a single calendar day.
// RestRepo is the remote implementation; CachingRepo composes a DaySource
// and layers the cache over it.
type DaySource interface {
	TopArticlesForDay(ctx context.Context, year, month, day int) ([]ArticleCount, error)
}

// RestRepo fetches article counts from the Wikimedia pageviews REST API.
// Concurrent fetches are bounded so a month fan-out cannot open 31
// simultaneous connections against the remote source.
type RestRepo struct {
	client    *retryablehttp.Client
	baseURL   string
	userAgent string
	sem       *semaphore.Weighted
}

// NewRestRepo creates a RestRepo limited to maxConcurrency in-flight
// requests, each subject to timeout.
func NewRestRepo(baseURL, userAgent string, maxConcurrency int64, timeout time.Duration) *RestRepo {
	client := retryablehttp.NewClient()
	// Upstream failures surface to the caller unchanged.
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = timeout

	return &RestRepo{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
		sem:       semaphore.NewWeighted(maxConcurrency),
	}
}

type pageviewsResponse struct {
	Items []struct {
		Articles []struct {
			Article string `json:"article"`
			Views   int64  `json:"views"`
		} `json:"articles"`
	} `json:"items"`
}

// TopArticlesForDay fetches the count list for one day from the remote
// API. A day the API has no data for yields an empty list, not an error.
func (r *RestRepo) TopArticlesForDay(ctx context.Context, year, month, day int) ([]ArticleCount, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	url := fmt.Sprintf("%s/%04d/%02d/%02d", r.baseURL, year, month, day)
	if glog.V(2) {
		glog.Infof("fetch %s", url)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.FetchFailed, err, "unable to fetch article counts")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.FetchFailed,
			"unable to fetch article counts: %s", resp.Status)
	}

	var decoded pageviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(errors.FetchFailed, err, "malformed pageviews response")
	}

	if len(decoded.Items) == 0 {
		return []ArticleCount{}, nil
	}

	articles := decoded.Items[0].Articles
	counts := make([]ArticleCount, 0, len(articles))
	for _, a := range articles {
		counts = append(counts, ArticleCount{
			ArticleName:  a.Article,
			ArticleCount: a.Views,
			Year:         year,
			Month:        month,
			Day:          day,
		})
	}
	return counts, nil
}
