package domain

// Page statuses
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
)

// PageRef identifies one scanned block window for a controller
type PageRef struct {
	Controller string
	From       uint64
	To         uint64
}

// PageFinish summarizes a finished page
type PageFinish struct {
	Status       string
	Logs         int
	Transactions int
	Findings     int
	ElapsedMS    int64
	ErrText      string
}
