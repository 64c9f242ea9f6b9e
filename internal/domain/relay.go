package domain

import "github.com/trebuchet-org/treb-relay/internal/domain/models"

// Messages exchanged by the relay's HTTP surface. The server writes them and the
// trigger client reads them back, so both sides share one definition.

// DeployRequest is the body of POST /deploy
type DeployRequest struct {
	Tag *string `json:"tag,omitempty"`
}

// TagOrDefault resolves the tag echoed back in the response
func (r DeployRequest) TagOrDefault() string {
	if r.Tag == nil {
		return DefaultTag
	}
	return *r.Tag
}

// DeployResponse is the body returned by POST /deploy
type DeployResponse struct {
	Success  bool   `json:"success"`
	ExitCode *int   `json:"exitCode,omitempty"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Tag      string `json:"tag"`
	Error    string `json:"error,omitempty"`
}

// DeployErrorResponse is returned when the toolchain could not be launched
type DeployErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatusResponse is the body returned by GET /status and by the auth gate
type StatusResponse struct {
	OK     bool                     `json:"ok"`
	Latest *models.DeploymentRecord `json:"latest,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	OK bool `json:"ok"`
}

// NoDeploymentsMessage is the exact error text reported by /status on an empty project
const NoDeploymentsMessage = "No deployments yet"
