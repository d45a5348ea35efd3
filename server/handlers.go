package server

import (
	"net/http"

	"github.com/benupsavs/growtherapy-takehome/controller"
)

func handlers(top *controller.TopController) map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/top/month/{year:[0-9]+}/{month:[0-9]+}":                  top.Month,
		"/api/v1/top/week/{year:[0-9]+}/{week:[0-9]+}":                    top.Week,
		"/api/v1/top/day/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}":       top.Day,
		"/api/v1/articles/top/day/{year:[0-9]+}/{month:[0-9]+}/{article}": top.TopDayForArticle,

		"/api/v1/version": controller.VersionHandler,
	}
}
