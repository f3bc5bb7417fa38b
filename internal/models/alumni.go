package models

// AlumniRequestStatus transitions PENDING to APPROVED or REJECTED, both
// terminal and server-driven.
type AlumniRequestStatus string

const (
	AlumniPending  AlumniRequestStatus = "PENDING"
	AlumniApproved AlumniRequestStatus = "APPROVED"
	AlumniRejected AlumniRequestStatus = "REJECTED"
)

// AlumniRequest links an alumni sign-up to the approving professor.
type AlumniRequest struct {
	ID             string              `json:"id"`
	AlumniID       string              `json:"alumniId"`
	AlumniUsername string              `json:"alumniUsername"`
	AlumniEmail    string              `json:"alumniEmail"`
	ProfessorID    string              `json:"professorId"`
	ProfessorEmail string              `json:"professorEmail"`
	Status         AlumniRequestStatus `json:"status"`
	CreatedAt      string              `json:"createdAt"`
}
