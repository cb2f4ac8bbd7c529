package models

import "time"

// Customer status values.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// CustomerRecord is a committed service request held in the record store.
// UserID is an 8-character alphanumeric identifier, unique and immutable
// once created.
type CustomerRecord struct {
	UserID         string    `bson:"userId" json:"userId"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	Address        string    `bson:"address" json:"address"`
	ServiceDetails string    `bson:"serviceDetails" json:"serviceDetails"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// CanCancel reports whether the record is still inside its cancellation window.
func (c *CustomerRecord) CanCancel(window time.Duration) bool {
	return time.Since(c.CreatedAt) < window
}

// CancellationDeadline returns the moment the cancellation window closes.
func (c *CustomerRecord) CancellationDeadline(window time.Duration) time.Time {
	return c.CreatedAt.Add(window)
}

// CustomerStats summarizes record-store contents for the admin surface.
type CustomerStats struct {
	TotalCustomers     int `json:"totalCustomers"`
	ActiveCustomers    int `json:"activeCustomers"`
	CancelledCustomers int `json:"cancelledCustomers"`
}
