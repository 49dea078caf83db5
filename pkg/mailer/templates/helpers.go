package templates

import (
	"strings"
	"time"
)

const dateLayout = "02 January 2006, 15:04"

// Option pattern
type Option func(*AlertData)

func WithBody(body string) Option { return func(d *AlertData) { d.Body = strings.TrimSpace(body) } }
func WithType(typ string) Option  { return func(d *AlertData) { d.Type = typ } }

func WithEndDate(t time.Time) Option {
	return func(d *AlertData) {
		utc := t.UTC()
		d.EndDate = utc
		d.EndDateText = utc.Format(dateLayout)
	}
}

// NewAlertCreatedData builds the data of the "alert_created" templates.
func NewAlertCreatedData(appName, recipient, alertID, title string, opts ...Option) map[string]any {
	d := AlertData{
		AppName:        appName,
		RecipientEmail: recipient,
		AlertID:        alertID,
		Title:          title,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
