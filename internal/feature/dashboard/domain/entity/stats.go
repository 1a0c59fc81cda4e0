// Package entity defines the domain entities for the dashboard feature.
package entity

// TimelineBucket is one hourly slice of log volume.
type TimelineBucket struct {
	Time  string `json:"time"`
	Count int64  `json:"count"`
}

// Stats is the aggregate view shown on the dashboard. Unreachable backends
// degrade their numbers to zero instead of failing the page.
type Stats struct {
	TotalLogs     int64            `json:"total_logs"`
	LogsToday     int64            `json:"logs_today"`
	ErrorCount    int64            `json:"error_count"`
	FilesUploaded int64            `json:"files_uploaded"`
	Timeline      []TimelineBucket `json:"timeline"`
}
