package domain

// Event types
const (
	EventJobCreated       = "job.created"
	EventJobAccepted      = "job.accepted"
	EventJobStatusChanged = "job.status_changed"
	EventReviewCreated    = "review.created"
	EventAccountBanned    = "account.banned"
	EventAccountUnbanned  = "account.unbanned"
)

// Stream names
const (
	JobEventsStream     = "fixithub.job.events"
	ReviewEventsStream  = "fixithub.review.events"
	AccountEventsStream = "fixithub.account.events"
)

// JobEvent is published for job creation and every status change
type JobEvent struct {
	JobID      uint   `json:"jobId"`
	ClientID   uint   `json:"clientId"`
	HandymanID *uint  `json:"handymanId,omitempty"`
	From       string `json:"from,omitempty"`
	Status     string `json:"status"`
	ActorID    uint   `json:"actorId"`
}

// ReviewEvent is published once a review has been recorded
type ReviewEvent struct {
	ReviewID   uint `json:"reviewId"`
	JobID      uint `json:"jobId"`
	HandymanID uint `json:"handymanId"`
	Rating     int  `json:"rating"`
}

// AccountEvent is published on moderation actions
type AccountEvent struct {
	AccountID uint `json:"accountId"`
	ActorID   uint `json:"actorId"`
}
