package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"github.com/benupsavs/growtherapy-takehome/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		glog.Errorf("json.Encode() %+v", err)
	}
}

func respondWithError(w http.ResponseWriter, err error) {
	status := errors.StatusCode(err)
	if status == http.StatusInternalServerError {
		glog.Errorf("%+v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); encErr != nil {
		glog.Errorf("json.Encode() %+v", encErr)
	}
}

func respondWithOptions(w http.ResponseWriter, options []string) {
	w.Header().Set("Allow", strings.Join(options, ", "))
	w.WriteHeader(http.StatusOK)
}

func respondWithStatus(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

// intVar parses a numeric route variable. The routes constrain these to
// digits, so a failure here means a route registration bug.
func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errors.Newf(errors.InvalidArgument, "%s is not a number", name)
	}
	return v, nil
}
