package views

import "time"

type NotificationType string

const (
	Success NotificationType = "success"
	Error   NotificationType = "error"
	Warning NotificationType = "warning"
	Info    NotificationType = "info"
)

const DefaultNotificationDuration = 5 * time.Second

// Notification is the transient banner shown after an action.
type Notification struct {
	Type     NotificationType `json:"type"`
	Message  string           `json:"message"`
	ShownAt  time.Time        `json:"shown_at"`
	Duration time.Duration    `json:"duration"`
}

func NewNotification(t NotificationType, message string, now time.Time) Notification {
	return Notification{Type: t, Message: message, ShownAt: now, Duration: DefaultNotificationDuration}
}

func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ShownAt.Add(n.Duration))
}
