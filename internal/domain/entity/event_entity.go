package entity

import (
	"slices"
	"time"
)

// DefaultTeam is assigned to events created without a team.
const DefaultTeam = "General"

// StartupWindowMonths is how far ahead the startup bundle looks for events.
const StartupWindowMonths = 2

type Event struct {
	Key         string    `json:"_id" bson:"_id,omitempty"`
	ID          string    `json:"id" bson:"id"`
	Date        time.Time `json:"date" bson:"date"`
	Time        string    `json:"time" bson:"time"`
	Team        string    `json:"team" bson:"team"`
	Users       []string  `json:"users" bson:"users"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Comments    []string  `json:"comments" bson:"comments"`
}

// HasUser reports whether userName is invited to the event.
func (e *Event) HasUser(userName string) bool {
	return slices.Contains(e.Users, userName)
}

// StartupWindow returns the [from, to) range of event dates visible at now.
func StartupWindow(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, StartupWindowMonths, 0)
}
