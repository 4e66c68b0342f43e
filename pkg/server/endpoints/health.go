package endpoints

import (
	"net/http"
	"time"

	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

const (
	serviceName    = "State Loan Management System"
	serviceVersion = "1.0.0"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// RegisterHealthEndpoints registers the health endpoint. It requires no
// authentication so load balancers can probe it.
func RegisterHealthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/health", handleHealth(s.Stores.Health)).Methods("GET")
}

// handleHealth always answers 200; a failed connectivity probe only
// flips the status field in the body.
func handleHealth(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "UP",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   serviceName,
			Version:   serviceVersion,
		}

		if err := health.CheckConnectivity(); err != nil {
			response.Status = "DOWN"
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}
