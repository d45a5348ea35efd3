package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/benupsavs/growtherapy-takehome/errors"
	h "github.com/benupsavs/growtherapy-takehome/helpers"
	"github.com/benupsavs/growtherapy-takehome/models"
)

// TopViewsResponse wraps a ranked article count list.
type TopViewsResponse struct {
	ArticleCounts []models.ArticleCount `json:"article_counts"`
}

// TopArticleForDayResponse identifies the single day on which an article
// peaked within a month.
type TopArticleForDayResponse struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Day          int    `json:"day"`
	ArticleName  string `json:"article_name"`
	ArticleCount int64  `json:"article_count"`
}

// TopController serves the top-articles query surface.
type TopController struct {
	repo models.Repo
}

// NewTopController creates a TopController over the given repository.
func NewTopController(repo models.Repo) *TopController {
	return &TopController{repo: repo}
}

// Month handles /api/v1/top/month/{year}/{month}
func (ctl *TopController) Month(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "OPTIONS":
		respondWithOptions(w, []string{"OPTIONS", "GET"})
	case "GET":
		year, err := intVar(r, "year")
		if err != nil {
			respondWithError(w, err)
			return
		}
		month, err := intVar(r, "month")
		if err != nil {
			respondWithError(w, err)
			return
		}
		counts, err := ctl.repo.TopArticlesForMonth(r.Context(), year, month)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithData(w, TopViewsResponse{ArticleCounts: counts})
	default:
		respondWithStatus(w, http.StatusMethodNotAllowed)
	}
}

// Week handles /api/v1/top/week/{year}/{week}
func (ctl *TopController) Week(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "OPTIONS":
		respondWithOptions(w, []string{"OPTIONS", "GET"})
	case "GET":
		year, err := intVar(r, "year")
		if err != nil {
			respondWithError(w, err)
			return
		}
		week, err := intVar(r, "week")
		if err != nil {
			respondWithError(w, err)
			return
		}
		counts, err := ctl.repo.TopArticlesForWeek(r.Context(), year, week)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithData(w, TopViewsResponse{ArticleCounts: counts})
	default:
		respondWithStatus(w, http.StatusMethodNotAllowed)
	}
}

// Day handles /api/v1/top/day/{year}/{month}/{day}
func (ctl *TopController) Day(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "OPTIONS":
		respondWithOptions(w, []string{"OPTIONS", "GET"})
	case "GET":
		year, err := intVar(r, "year")
		if err != nil {
			respondWithError(w, err)
			return
		}
		month, err := intVar(r, "month")
		if err != nil {
			respondWithError(w, err)
			return
		}
		day, err := intVar(r, "day")
		if err != nil {
			respondWithError(w, err)
			return
		}
		counts, err := ctl.repo.TopArticlesForDay(r.Context(), year, month, day)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithData(w, TopViewsResponse{ArticleCounts: counts})
	default:
		respondWithStatus(w, http.StatusMethodNotAllowed)
	}
}

// TopDayForArticle handles /api/v1/articles/top/day/{year}/{month}/{article}.
// It scans the month's per-day breakdown for the single day on which the
// named article had the most views.
func (ctl *TopController) TopDayForArticle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "OPTIONS":
		respondWithOptions(w, []string{"OPTIONS", "GET"})
	case "GET":
		year, err := intVar(r, "year")
		if err != nil {
			respondWithError(w, err)
			return
		}
		month, err := intVar(r, "month")
		if err != nil {
			respondWithError(w, err)
			return
		}
		article := mux.Vars(r)["article"]

		byDay, err := ctl.repo.TopArticlesForMonthByDay(r.Context(), year, month)
		if err != nil {
			respondWithError(w, err)
			return
		}

		var (
			found   bool
			bestDay h.Date
			best    models.ArticleCount
		)
		for day, counts := range byDay {
			for _, count := range counts {
				if count.ArticleName != article {
					continue
				}
				// Ties go to the earliest day, so the result does not
				// depend on map iteration order.
				if !found ||
					count.ArticleCount > best.ArticleCount ||
					(count.ArticleCount == best.ArticleCount && day.Before(bestDay)) {
					found = true
					bestDay = day
					best = count
				}
			}
		}
		if !found {
			respondWithError(w, errors.Newf(errors.NotFound,
				"no views found for article %q in %04d-%02d", article, year, month))
			return
		}

		respondWithData(w, TopArticleForDayResponse{
			Year:         bestDay.Year,
			Month:        int(bestDay.Month),
			Day:          bestDay.Day,
			ArticleName:  best.ArticleName,
			ArticleCount: best.ArticleCount,
		})
	default:
		respondWithStatus(w, http.StatusMethodNotAllowed)
	}
}
