package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/server/response"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// DeployRunHeader carries the ID of the run in /deploy responses, matching the relay logs
const DeployRunHeader = "X-Deploy-Run"

var (
	deployResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deployments_total",
			Help: "Deployments triggered through the relay, by outcome",
		},
		[]string{"result"},
	)

	deploysInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_deployments_in_flight",
		Help: "Deploy requests currently waiting on the toolchain",
	})
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, domain.HealthResponse{OK: true})
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.WriteDeployError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req domain.DeployRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			response.WriteDeployError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	deploysInFlight.Inc()
	defer deploysInFlight.Dec()

	run, err := s.trigger.Run(r.Context(), usecase.TriggerDeploymentParams{Tag: req.TagOrDefault()})
	if err != nil {
		deployResults.WithLabelValues("launch_error").Inc()
		s.log.Error("deploy failed", "error", err)
		response.WriteDeployError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := "failure"
	if run.Success() {
		result = "success"
	}
	deployResults.WithLabelValues(result).Inc()

	exitCode := run.Result.ExitCode
	w.Header().Set(DeployRunHeader, run.ID)
	response.WriteJSON(w, http.StatusOK, domain.DeployResponse{
		Success:  run.Success(),
		ExitCode: &exitCode,
		Stdout:   run.Result.Stdout,
		Stderr:   run.Result.Stderr,
		Tag:      run.Tag,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	latest, err := s.latest.Run(r.Context())
	if errors.Is(err, domain.ErrNoDeployments) {
		response.WriteJSON(w, http.StatusOK, domain.StatusResponse{OK: false, Error: domain.NoDeploymentsMessage})
		return
	}
	if err != nil {
		s.log.Error("status lookup failed", "error", err)
		response.WriteStatusError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, domain.StatusResponse{OK: true, Latest: latest.Record})
}
