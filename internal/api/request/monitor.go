package request

// UpdateMonitorConfigRequest updates the opportunity monitor. All fields
// are optional; omitted fields keep their current value.
type UpdateMonitorConfigRequest struct {
	Enabled        *bool     `json:"enabled,omitempty"`
	Interval       *int64    `json:"interval,omitempty"`
	Threshold      *float64  `json:"threshold,omitempty"`
	MonitoredCodes *[]string `json:"monitoredCodes,omitempty"`
}
