package progress

// ParentStatus is the label written back to the parent's status column.
type ParentStatus string

const (
	StatusNotStarted     ParentStatus = "Not Started"
	StatusStarted        ParentStatus = "Started"
	StatusWorking        ParentStatus = "Working"
	StatusMakingProgress ParentStatus = "Making Progress"
	StatusDone           ParentStatus = "Done"
)

func (s ParentStatus) String() string { return string(s) }

// Classify maps a progress value to a parent status.
// Check order matters: 0, <=25, <75, <100, then Done.
func Classify(progress int) ParentStatus {
	if progress == 0 {
		return StatusNotStarted
	}
	if progress <= 25 {
		return StatusStarted
	}
	if progress < 75 {
		return StatusWorking
	}
	if progress < 100 {
		return StatusMakingProgress
	}
	return StatusDone
}
