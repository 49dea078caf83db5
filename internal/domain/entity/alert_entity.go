package entity

import "time"

// Alert is a banner shown to every user until EndDate.
// ID is the business key chosen by clients; Key is the storage key.
type Alert struct {
	Key     string    `json:"_id" bson:"_id,omitempty"`
	ID      string    `json:"id" bson:"id"`
	Type    string    `json:"type" bson:"type"`
	Title   string    `json:"title" bson:"title"`
	Body    string    `json:"body" bson:"body"`
	EndDate time.Time `json:"endDate" bson:"endDate"`
}

// ActiveAt reports whether the alert is still displayed at t.
func (a *Alert) ActiveAt(t time.Time) bool {
	return a.EndDate.After(t)
}
