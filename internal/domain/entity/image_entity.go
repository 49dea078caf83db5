package entity

import "time"

// Image references an uploaded picture stored in object storage.
type Image struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"userId"`
	URL         string    `json:"url" bson:"url"`
	ObjectPath  string    `json:"objectPath" bson:"objectPath"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Width       int       `json:"width" bson:"width"`
	Height      int       `json:"height" bson:"height"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
