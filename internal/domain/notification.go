package domain

import "time"

// Notification is a message for a user raised by a system event. The only
// mutation is marking it read.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNotification is the insert payload for a Notification.
type NewNotification struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

func (n NewNotification) Validate() error {
	if err := requireID("userId", n.UserID); err != nil {
		return err
	}
	return requireText("message", n.Message)
}
