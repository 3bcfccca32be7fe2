package dto

// StudySessionResponse acknowledges the start of a tracked study
// session.
type StudySessionResponse struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
}

// EndStudySessionRequest closes a tracked study session.
type EndStudySessionRequest struct {
	SessionID string `json:"session_id"`
}

// StudySummaryResponse reports the committed result of a session end.
// Recorded is false when the session was too short to count.
type StudySummaryResponse struct {
	Recorded          bool   `json:"recorded"`
	ElapsedSeconds    int64  `json:"elapsed_seconds"`
	TotalStudySeconds int64  `json:"total_study_seconds"`
	StudyTime         string `json:"study_time"`
	Streak            int    `json:"streak"`
}
