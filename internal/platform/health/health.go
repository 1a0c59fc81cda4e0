// Package health defines the shared health-report vocabulary for the backing
// services.
package health

// Connection states reported by the platform clients.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// Report describes the state of one backing service.
type Report struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Disconnected builds a report for a service with no live handle.
func Disconnected(message string) Report {
	return Report{
		Status:  StatusDisconnected,
		Details: map[string]any{"message": message},
	}
}

// Errored builds a report for a service whose round trip failed.
func Errored(err error) Report {
	return Report{
		Status:  StatusError,
		Details: map[string]any{"error": err.Error()},
	}
}

// Overall aggregates per-service reports into a single status: "unhealthy" if
// any service errored, "degraded" if any is disconnected, "healthy" otherwise.
func Overall(services map[string]Report) string {
	status := "healthy"
	for _, r := range services {
		if r.Status == StatusError {
			return "unhealthy"
		}
		if r.Status == StatusDisconnected {
			status = "degraded"
		}
	}
	return status
}
