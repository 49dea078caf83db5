package entity

import "time"

type Comment struct {
	Key    string    `json:"_id" bson:"_id,omitempty"`
	ID     string    `json:"id" bson:"id"`
	UserID string    `json:"userId" bson:"userId"`
	Text   string    `json:"text" bson:"text"`
	Date   time.Time `json:"date" bson:"date"`
}
