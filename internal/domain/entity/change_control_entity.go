package entity

import (
	"fmt"
	"strings"
	"time"
)

// Kind names a record kind tracked by change control.
type Kind uint8

const (
	KindUser Kind = iota + 1
	KindEvent
	KindAlert
	KindComment
)

// Kinds lists every tracked kind.
var Kinds = []Kind{KindUser, KindEvent, KindAlert, KindComment}

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindEvent:
		return "event"
	case KindAlert:
		return "alert"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindEvent, KindAlert, KindComment:
		return true
	default:
		return false
	}
}

// CounterField returns the document/column name of the counter for k.
func (k Kind) CounterField() (string, error) {
	switch k {
	case KindUser:
		return "userCount", nil
	case KindEvent:
		return "eventCount", nil
	case KindAlert:
		return "alertCount", nil
	case KindComment:
		return "commentCount", nil
	default:
		return "", fmt.Errorf("invalid update type: %s", k)
	}
}

// ParseKind converts the wire name of a kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return KindUser, nil
	case "event":
		return KindEvent, nil
	case "alert":
		return KindAlert, nil
	case "comment":
		return KindComment, nil
	default:
		return 0, fmt.Errorf("invalid update type: %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid update type: %s", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ChangeControl is the single record clients poll to learn whether data
// changed since they last fetched it.
type ChangeControl struct {
	Date         time.Time `json:"date" bson:"date"`
	UserCount    int64     `json:"userCount" bson:"userCount"`
	EventCount   int64     `json:"eventCount" bson:"eventCount"`
	AlertCount   int64     `json:"alertCount" bson:"alertCount"`
	CommentCount int64     `json:"commentCount" bson:"commentCount"`
}

// Apply increments the counter of k and stamps the record with at.
func (c *ChangeControl) Apply(k Kind, at time.Time) error {
	switch k {
	case KindUser:
		c.UserCount++
	case KindEvent:
		c.EventCount++
	case KindAlert:
		c.AlertCount++
	case KindComment:
		c.CommentCount++
	default:
		return fmt.Errorf("invalid update type: %s", k)
	}
	c.Date = at
	return nil
}

// Count returns the counter of k.
func (c *ChangeControl) Count(k Kind) int64 {
	switch k {
	case KindUser:
		return c.UserCount
	case KindEvent:
		return c.EventCount
	case KindAlert:
		return c.AlertCount
	case KindComment:
		return c.CommentCount
	default:
		return 0
	}
}

// Version is the total number of bumps applied to the record. Every
// Increment raises it by one, so it orders snapshots of the record.
func (c *ChangeControl) Version() int64 {
	return c.UserCount + c.EventCount + c.AlertCount + c.CommentCount
}

// ChangedSince reports whether the record was modified strictly after t.
func (c *ChangeControl) ChangedSince(t time.Time) bool {
	return t.Before(c.Date)
}
