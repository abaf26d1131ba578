package models

import "time"

type CreateJobRoleRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type UpdateJobRoleRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationResponse struct {
	ID             string    `json:"id"`
	JobRoleID      string    `json:"job_role_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	CandidatePhone string    `json:"candidate_phone,omitempty"`
	CVFileKey      string    `json:"cv_file_key"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

func NewApplicationResponse(app *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             app.ID.String(),
		JobRoleID:      app.JobRoleID.String(),
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		CandidatePhone: app.CandidatePhone,
		CVFileKey:      app.CVFileKey,
		Status:         string(app.Status),
		SubmittedAt:    app.SubmittedAt,
	}
}

type SimilarApplicationResponse struct {
	ApplicationID string  `json:"application_id"`
	JobRoleID     string  `json:"job_role_id"`
	CandidateName string  `json:"candidate_name"`
	Score         float32 `json:"score"`
}
