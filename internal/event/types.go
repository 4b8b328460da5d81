package event

// Transition is the outcome of a timer tick.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionWorkBegun
	TransitionBreakBegun
)

func (t Transition) String() string {
	switch t {
	case TransitionWorkBegun:
		return "work_begun"
	case TransitionBreakBegun:
		return "break_begun"
	default:
		return "none"
	}
}

// Phase names a timer phase for display and status reports.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Used by the notification collaborator
type Notification struct {
	Title   string
	Message string
}

var (
	WorkNotification  = Notification{Title: "Work time", Message: "It's time to work"}
	BreakNotification = Notification{Title: "Break time", Message: "Take a break"}
)

// NotificationFor maps a transition to the message announcing it. The
// second result is false for TransitionNone.
func NotificationFor(t Transition) (Notification, bool) {
	switch t {
	case TransitionWorkBegun:
		return WorkNotification, true
	case TransitionBreakBegun:
		return BreakNotification, true
	}
	return Notification{}, false
}
