package health

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"
)

// Handler serves liveness and status probes for the playground process.
type Handler struct {
	startTime   time.Time
	serviceName string
	version     string
	model       string
	agents      []string
}

// New creates a health handler describing the running agents.
func New(serviceName, version, model string, agents []string) *Handler {
	sorted := append([]string(nil), agents...)
	slices.Sort(sorted)

	return &Handler{
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
		model:       model,
		agents:      sorted,
	}
}

// Status is the body returned by HandleHealth.
type Status struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Model     string   `json:"model"`
	Agents    []string `json:"agents"`
	Uptime    string   `json:"uptime"`
	Timestamp string   `json:"timestamp"`
}

// HandleLiveness returns 200 OK while the process is running.
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HandleHealth reports the configured model and agents.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Model:     h.model,
		Agents:    h.agents,
		Uptime:    time.Since(h.startTime).Truncate(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(h.agents) == 0 {
		status.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
