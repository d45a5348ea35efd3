package server

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/robfig/cron"

	"github.com/benupsavs/growtherapy-takehome/controller"
	"github.com/benupsavs/growtherapy-takehome/models"
)

// StartServer owns the http process and cron jobs
func StartServer(port int64, repo models.Repo) {

	// Set up the cron jobs
	c := cron.New()
	for schedule, job := range jobs(repo) {
		c.AddFunc(schedule, job)
	}
	c.Start()

	r := mux.NewRouter()

	top := controller.NewTopController(repo)
	for url, handler := range handlers(top) {
		r.HandleFunc(url, handler)
	}

	http.Handle("/", r)

	// Start the HTTP server
	glog.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}
