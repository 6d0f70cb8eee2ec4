package ipc

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running      bool   `json:"running"`
	Paused       bool   `json:"paused"`
	Windows      string `json:"windows"`
	NextWindow   string `json:"next_window"`
	PendingCount int    `json:"pending_count"`
	LedgerDBPath string `json:"ledger_db_path"`
	LockPath     string `json:"lock_path"`
	PID          int    `json:"pid"`
}

// PauseRequest suspends publishing passes.
type PauseRequest struct{}

// PauseResponse reports the resulting pause state.
type PauseResponse struct {
	Paused bool `json:"paused"`
}

// ResumeRequest lifts a pause.
type ResumeRequest struct{}

// ResumeResponse reports the resulting pause state.
type ResumeResponse struct {
	Paused bool `json:"paused"`
}

// StopRequest stops the scheduling loop.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// LogTailRequest fetches log lines based on offset and follow semantics.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int   `json:"wait_millis"`
}

// LogTailResponse returns log lines and the next offset.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}
