package notifier

import "time"

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Notifier surfaces short-lived messages to the user. At most one
// notification is active at a time; a new one replaces the previous.
type Notifier interface {
	Notify(level Level, message string)
	// Active returns the current notification, if any has not expired or been dismissed.
	Active() (Notification, bool)
	Dismiss()
}
