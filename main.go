package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	// Expose profiling info at /debug/pprof/
	_ "net/http/pprof"

	"github.com/golang/glog"

	"github.com/benupsavs/growtherapy-takehome/cache"
	"github.com/benupsavs/growtherapy-takehome/config"
	"github.com/benupsavs/growtherapy-takehome/models"
	"github.com/benupsavs/growtherapy-takehome/server"
)

var configFile = flag.String("config", config.DefaultConfigFilePath, "path to the config file")

func main() {

	// Parse flags; also used to init glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	// Catch closing signal and flush logs
	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	go func() {
		<-sigc
		glog.Flush()
		os.Exit(1)
	}()

	settings, err := config.Load(*configFile)
	if err != nil {
		glog.Fatal(err)
	}

	// We read the config file and it's our responsibility to set up the
	// cache connection and the repositories before we start the server
	if glog.V(2) {
		glog.Info("Initialising cache connection")
	}
	store := cache.New(settings.MemcachedHost, settings.MemcachedPort)

	rest := models.NewRestRepo(
		settings.WikipediaURL,
		settings.WikipediaUserAgent,
		settings.FetchConcurrency,
		settings.FetchTimeout,
	)
	repo := models.NewCachingRepo(rest, store)

	if glog.V(2) {
		glog.Infof("Starting server on port %d", settings.ListenPort)
	}
	server.StartServer(settings.ListenPort, repo)
}
