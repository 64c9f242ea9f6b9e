package response

import (
	"encoding/json"
	"net/http"

	"github.com/trebuchet-org/treb-relay/internal/domain"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteStatusError writes the {ok:false,error} shape used by /status and the auth gate
func WriteStatusError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, domain.StatusResponse{OK: false, Error: message})
}

// WriteDeployError writes the {success:false,error} shape used by /deploy
func WriteDeployError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, domain.DeployErrorResponse{Success: false, Error: message})
}
