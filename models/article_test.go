package models

import (
	"reflect"
	"testing"
)

func TestCountsJSONWireFormat(t *testing.T) {

	encoded, err := CountsToJSON([]ArticleCount{
		{ArticleName: "Main_Page", ArticleCount: 18793503, Year: 2015, Day: 10, Month: 10},
	})
	if err != nil {
		t.Fatalf("CountsToJSON() unexpected error: %v", err)
	}

	// Field names are part of the cache contract; period fields that are
	// unset must be omitted.
	want := `[{"article_name":"Main_Page","article_count":18793503,"year":2015,"month":10,"day":10}]`
	if string(encoded) != want {
		t.Errorf("CountsToJSON() = %s, should be %s", encoded, want)
	}
}

func TestCountsJSONRoundTrip(t *testing.T) {

	counts := []ArticleCount{
		{ArticleName: "Main_Page", ArticleCount: 18793503, Year: 2015, Month: 10, Day: 10},
		{ArticleName: "Napoleon", ArticleCount: 8871, Year: 2015, Month: 10, Day: 10},
		{ArticleName: "Weekly", ArticleCount: 5, Year: 2022, Week: 3},
	}

	encoded, err := CountsToJSON(counts)
	if err != nil {
		t.Fatalf("CountsToJSON() unexpected error: %v", err)
	}
	decoded, err := JSONToCounts(encoded)
	if err != nil {
		t.Fatalf("JSONToCounts() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decoded, counts) {
		t.Errorf("round trip = %+v, should be %+v", decoded, counts)
	}
}

func TestCountsJSONEmpty(t *testing.T) {

	// An empty list is a valid cacheable value; it must encode as an
	// empty array, never null, so it is distinguishable from absence.
	for _, counts := range [][]ArticleCount{nil, {}} {
		encoded, err := CountsToJSON(counts)
		if err != nil {
			t.Fatalf("CountsToJSON(%v) unexpected error: %v", counts, err)
		}
		if string(encoded) != "[]" {
			t.Errorf("CountsToJSON(%v) = %s, should be []", counts, encoded)
		}

		decoded, err := JSONToCounts(encoded)
		if err != nil {
			t.Fatalf("JSONToCounts() unexpected error: %v", err)
		}
		if decoded == nil || len(decoded) != 0 {
			t.Errorf("JSONToCounts() = %v, should be an empty non-nil list", decoded)
		}
	}
}
