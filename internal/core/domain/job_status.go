package domain

// JobStatus is the lifecycle state of a job request
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobAccepted   JobStatus = "accepted"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// jobTransitions lists the permitted target states for each source state.
// pending -> accepted is only reachable through the accept operation.
var jobTransitions = map[JobStatus][]JobStatus{
	JobPending:    {JobAccepted, JobCancelled},
	JobAccepted:   {JobInProgress, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
	JobCompleted:  nil,
	JobCancelled:  nil,
}

// Valid reports whether s is a known job status
func (s JobStatus) Valid() bool {
	_, ok := jobTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// CanTransition reports whether from -> to is a permitted edge
func CanTransition(from, to JobStatus) bool {
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
