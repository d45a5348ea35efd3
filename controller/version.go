package controller

import (
	"net/http"
)

var (
	// BuildVersion and BuildDate are set via ldflags during build
	BuildVersion = "development"
	BuildDate    = "unknown"
)

// VersionHandler is a web handler that returns build information
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "OPTIONS":
		respondWithOptions(w, []string{"OPTIONS", "GET"})
	case "GET":
		respondWithData(w, map[string]string{
			"version": BuildVersion,
			"date":    BuildDate,
		})
	default:
		respondWithStatus(w, http.StatusMethodNotAllowed)
	}
}
