package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/benupsavs/growtherapy-takehome/errors"
	h "github.com/benupsavs/growtherapy-takehome/helpers"
)

const pageviewsFixture = `{
  "items": [
    {
      "project": "en.wikipedia",
      "access": "all-access",
      "year": "2015",
      "month": "10",
      "day": "10",
      "articles": [
        {"article": "Main_Page", "views": 18793503, "rank": 1},
        {"article": "Special:Search", "views": 1134429, "rank": 2},
        {"article": "Napoleon", "views": 8871, "rank": 3}
      ]
    }
  ]
}`

func TestRestRepoFetchDay(t *testing.T) {

	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		if r.Header.Get("User-Agent") != "topviews-test/1.0" {
			t.Errorf("User-Agent = %q, should be topviews-test/1.0", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(pageviewsFixture))
	}))
	defer srv.Close()

	repo := NewRestRepo(srv.URL, "topviews-test/1.0", 4, 5*time.Second)
	counts, err := repo.TopArticlesForDay(context.Background(), 2015, 10, 10)
	if err != nil {
		t.Fatalf("TopArticlesForDay() unexpected error: %v", err)
	}

	if requestedPath != "/2015/10/10" {
		t.Errorf("requested path = %q, should be /2015/10/10", requestedPath)
	}

	want := []ArticleCount{
		{ArticleName: "Main_Page", ArticleCount: 18793503, Year: 2015, Month: 10, Day: 10},
		{ArticleName: "Special:Search", ArticleCount: 1134429, Year: 2015, Month: 10, Day: 10},
		{ArticleName: "Napoleon", ArticleCount: 8871, Year: 2015, Month: 10, Day: 10},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("TopArticlesForDay() = %+v, should be %+v", counts, want)
	}
}

func TestRestRepoUpstreamFailure(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := NewRestRepo(srv.URL, "topviews-test/1.0", 4, 5*time.Second)
	_, err := repo.TopArticlesForDay(context.Background(), 2015, 10, 10)
	if err == nil {
		t.Fatal("TopArticlesForDay() should have failed")
	}
	if code, ok := errors.CodeOf(err); !ok || code != errors.FetchFailed {
		t.Errorf("error code = %v, should be FetchFailed", code)
	}
}

func TestRestRepoNoData(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	repo := NewRestRepo(srv.URL, "topviews-test/1.0", 4, 5*time.Second)
	counts, err := repo.TopArticlesForDay(context.Background(), 2015, 10, 10)
	if err != nil {
		t.Fatalf("TopArticlesForDay() unexpected error: %v", err)
	}
	if counts == nil || len(counts) != 0 {
		t.Errorf("TopArticlesForDay() = %v, should be an empty non-nil list", counts)
	}
}

// The full path: remote fixture through the caching layer, returned
// unchanged and cached verbatim.
func TestDayFetchEndToEnd(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageviewsFixture))
	}))
	defer srv.Close()

	store := newMemStore()
	rest := NewRestRepo(srv.URL, "topviews-test/1.0", 4, 5*time.Second)
	repo := newTestRepo(rest, store, h.Date{Year: 2022, Month: time.March, Day: 15})

	counts, err := repo.TopArticlesForDay(context.Background(), 2015, 10, 10)
	if err != nil {
		t.Fatalf("TopArticlesForDay() unexpected error: %v", err)
	}
	if counts[0].ArticleName != "Main_Page" {
		t.Errorf("first article = %q, should be Main_Page", counts[0].ArticleName)
	}
	if last := counts[len(counts)-1]; last.ArticleName != "Napoleon" || last.ArticleCount != 8871 {
		t.Errorf("last article = %+v, should be Napoleon with 8871 views", last)
	}

	encoded, ok := store.GetBytes("counts.day.2015.10.10")
	if !ok {
		t.Fatal("day entry was not cached")
	}
	cached, err := JSONToCounts(encoded)
	if err != nil {
		t.Fatalf("JSONToCounts() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cached, counts) {
		t.Errorf("cached entry = %+v, should be %+v", cached, counts)
	}
}
