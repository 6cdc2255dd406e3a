package model

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber is a newsletter signup. Unsubscribing keeps the
// row and clears the active flag so a later re-subscribe is idempotent.
type NewsletterSubscriber struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	SubscribedAt   time.Time  `json:"subscribedAt" db:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty" db:"unsubscribed_at"`
}

// SubscribeRequest is the newsletter signup payload.
type SubscribeRequest struct {
	Email string `json:"email"`
}
