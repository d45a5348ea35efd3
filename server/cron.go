package server

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/benupsavs/growtherapy-takehome/models"
)

// Field name   | Mandatory? | Allowed values  | Allowed special characters
// ----------   | ---------- | --------------  | --------------------------
// Seconds      | Yes        | 0-59            | * / , -
// Minutes      | Yes        | 0-59            | * / , -
// Hours        | Yes        | 0-23            | * / , -
// Day of month | Yes        | 1-31            | * / , - ?
// Month        | Yes        | 1-12 or JAN-DEC | * / , -
// Day of week  | Yes        | 0-6 or SUN-SAT  | * / , - ?

func jobs(repo models.Repo) map[string]func() {
	return map[string]func(){
		//SS MI HH  DOM MON DOW
		"  0 10  0    *   *   *": func() { warmYesterday(repo) }, // Every day at 00:10
	}
}

// warmYesterday populates yesterday's day cache so the first request of
// the morning does not pay the remote round-trip. Failure only costs us
// the head start, so it is logged and ignored.
func warmYesterday(repo models.Repo) {
	y := time.Now().UTC().AddDate(0, 0, -1)
	if _, err := repo.TopArticlesForDay(context.Background(), y.Year(), int(y.Month()), y.Day()); err != nil {
		glog.Errorf("cache warm for %s failed: %v", y.Format("2006-01-02"), err)
	}
}
