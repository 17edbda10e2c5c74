package forms

// State is the submit button's label state for one submission cycle.
type State int

const (
	Idle State = iota
	Sending
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Button labels shown outside Idle.
const (
	LabelSending = "Sending…"
	LabelSuccess = "Message sent!"
	LabelPending = "Form not activated yet. Check your inbox."
	LabelFailed  = "Something went wrong. Please try again."
)
