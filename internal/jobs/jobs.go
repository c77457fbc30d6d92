// Package jobs runs playlist generation asynchronously behind a single-worker
// FIFO queue with an in-memory, poll-based status store.
//
// [Engine.Submit] enqueues a job and returns its identifier immediately.
// A lone worker goroutine drains the queue in submission order, streaming each
// job's progress into a per-job buffer in the [Store]. Clients poll
// [Store.Get]; an identifier the store has never seen reads as Queued, so a
// status check never fails, it only reports an earlier lifecycle stage.
//
// Records are evicted by [Store.Janitor] once a retention window passes after
// the job reaches a terminal status. A job evicted and polled again reads as
// Queued forever; callers are expected to stop polling at Complete or Error.
package jobs

// Status is a job lifecycle stage. Transitions are monotonic: Queued, then
// InProgress, then Complete or Error.
type Status string

const (
	StatusQueued     Status = "Queued"
	StatusInProgress Status = "InProgress"
	StatusComplete   Status = "Complete"
	StatusError      Status = "Error"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Result is a point-in-time snapshot of a job's status and accumulated output.
type Result struct {
	Status Status `json:"status"`
	Output string `json:"output"`
}
