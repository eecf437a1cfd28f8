// Package api exposes the coordination core over HTTP for dashboards
// and operator tooling.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/railyardhq/railyard/pkg/core"
	httpx "github.com/railyardhq/railyard/pkg/http"
	"github.com/railyardhq/railyard/pkg/models"
)

const (
	listCacheDuration = 5 * time.Second
	requestRate       = rate.Limit(20)
	requestBurst      = 40
)

// APIServer routes operator HTTP requests to the coordination core.
type APIServer struct {
	service core.TrainService
	router  *mux.Router
}

// NewAPIServer creates the HTTP adapter over a core service.
func NewAPIServer(service core.TrainService) *APIServer {
	s := &APIServer{
		service: service,
		router:  mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)
	s.router.Use(httpx.RateLimitMiddleware(requestRate, requestBurst))

	// Fleet listings tolerate a few seconds of lag; telemetry and
	// liveness reads never do, so only the list routes sit behind the
	// cache.
	listCache := httpx.CacheMiddleware(cache.New(listCacheDuration, time.Minute), listCacheDuration)
	s.router.Handle("/api/trains", listCache(http.HandlerFunc(s.getTrains))).Methods(http.MethodGet)
	s.router.Handle("/api/controllers", listCache(http.HandlerFunc(s.getControllers))).Methods(http.MethodGet)

	s.router.HandleFunc("/api/trains/{id}", s.getTrain).Methods(http.MethodGet)
	s.router.HandleFunc("/api/trains/{id}", s.updateTrain).Methods(http.MethodPut)
	s.router.HandleFunc("/api/trains/{id}/status", s.getTrainStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/trains/{id}/command", s.postCommand).Methods(http.MethodPost)

	s.router.HandleFunc("/api/controllers/{id}", s.getController).Methods(http.MethodGet)
	s.router.HandleFunc("/api/controllers/{id}", s.updateController).Methods(http.MethodPut)
	s.router.HandleFunc("/api/controllers/{id}/trains", s.getControllerTrains).Methods(http.MethodGet)
}

// Router returns the underlying router for serving and tests.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

func (s *APIServer) getTrains(w http.ResponseWriter, _ *http.Request) {
	trains, err := s.service.ListTrains()
	if err != nil {
		log.Printf("Error listing trains: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.encodeJSON(w, trains)
}

func (s *APIServer) getTrain(w http.ResponseWriter, r *http.Request) {
	train, err := s.service.GetTrain(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Train not found", http.StatusNotFound)
		return
	}

	s.encodeJSON(w, train)
}

func (s *APIServer) updateTrain(w http.ResponseWriter, r *http.Request) {
	var update models.TrainUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.UpdateTrain(mux.Vars(r)["id"], &update); err != nil {
		if errors.Is(err, core.ErrTrainNotFound) {
			http.Error(w, "Train not found", http.StatusNotFound)
			return
		}

		log.Printf("Error updating train: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) getTrainStatus(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetTrainStatus(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, core.ErrTrainNotFound) {
			http.Error(w, "Train not found", http.StatusNotFound)
			return
		}

		log.Printf("Error reading train status: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.encodeJSON(w, view)
}

func (s *APIServer) postCommand(w http.ResponseWriter, r *http.Request) {
	body := json.NewDecoder(r.Body)
	body.DisallowUnknownFields()

	var cmd models.Command
	if err := body.Decode(&cmd); err != nil {
		http.Error(w, "Invalid command body", http.StatusBadRequest)
		return
	}

	result, err := s.service.Dispatch(r.Context(), mux.Vars(r)["id"], cmd)

	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
		s.encodeJSON(w, result)
	case errors.Is(err, core.ErrTrainNotFound):
		http.Error(w, "Train not found", http.StatusNotFound)
	case errors.Is(err, models.ErrUnknownAction),
		errors.Is(err, models.ErrSpeedRange),
		errors.Is(err, models.ErrMissingSpeed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTransportUnavailable):
		http.Error(w, "Broker unavailable", http.StatusServiceUnavailable)
	default:
		log.Printf("Error dispatching command: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *APIServer) getControllers(w http.ResponseWriter, _ *http.Request) {
	controllers, err := s.service.ListControllers()
	if err != nil {
		log.Printf("Error listing controllers: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.encodeJSON(w, controllers)
}

func (s *APIServer) getController(w http.ResponseWriter, r *http.Request) {
	controller, err := s.service.GetController(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Controller not found", http.StatusNotFound)
		return
	}

	s.encodeJSON(w, controller)
}

// getControllerTrains serves the assignment list an edge controller
// pulls at startup when it is not configured with local trains.
func (s *APIServer) getControllerTrains(w http.ResponseWriter, r *http.Request) {
	trains, err := s.service.ListControllerTrains(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, core.ErrControllerNotFound) {
			http.Error(w, "Controller not found", http.StatusNotFound)
			return
		}

		log.Printf("Error listing controller trains: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.encodeJSON(w, trains)
}

func (s *APIServer) updateController(w http.ResponseWriter, r *http.Request) {
	var update models.ControllerUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.UpdateController(mux.Vars(r)["id"], &update); err != nil {
		if errors.Is(err, core.ErrControllerNotFound) {
			http.Error(w, "Controller not found", http.StatusNotFound)
			return
		}

		log.Printf("Error updating controller: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) encodeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Start serves the API on addr until the listener fails.
func (s *APIServer) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return srv.ListenAndServe()
}
