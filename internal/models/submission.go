package models

// SubmissionStatus tracks adjudication of a homework submission.
// PENDING is the only state from which a transition is allowed.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "PENDING"
	SubmissionApproved SubmissionStatus = "APPROVED"
	SubmissionRejected SubmissionStatus = "REJECTED"
)

// HomeworkSubmission is a student's evidence of completing a task.
// StudentName, TaskTitle and Coins are snapshots taken at submission time:
// tasks expire and students can be renamed or deleted afterwards, and the
// coin reward must not depend on a task lookup at approval time.
type HomeworkSubmission struct {
	ID          string           `json:"id"`
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	TaskID      string           `json:"taskId"`
	TaskTitle   string           `json:"taskTitle"`
	Coins       int              `json:"coins"`
	Link        string           `json:"link"`
	Image       string           `json:"image,omitempty"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt int64            `json:"submittedAt"` // unix milliseconds
}
