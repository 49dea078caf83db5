package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/planning-backend/pkg/mailer/templates"
)

// AlertNotifier queues one email job per recipient when an alert is created.
// cmd/email_worker renders and delivers them.
type AlertNotifier struct {
	Publisher  Publisher
	Queue      string
	Recipients []string
	AppName    string
	Logger     *logrus.Logger
}

func NewAlertNotifier(pub Publisher, queue string, recipients []string, appName string, logger *logrus.Logger) *AlertNotifier {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &AlertNotifier{Publisher: pub, Queue: queue, Recipients: recipients, AppName: appName, Logger: logger}
}

// NotifyAlert is best-effort: publish failures are logged.
func (n *AlertNotifier) NotifyAlert(ctx context.Context, a *entity.Alert) {
	if n == nil || n.Publisher == nil {
		return
	}
	for _, to := range n.Recipients {
		job := mailer.EmailJob{
			To:       to,
			Template: mailtpl.AlertCreated,
			Data: mailtpl.NewAlertCreatedData(n.AppName, to, a.ID, a.Title,
				mailtpl.WithType(a.Type),
				mailtpl.WithBody(a.Body),
				mailtpl.WithEndDate(a.EndDate),
			),
		}
		if err := n.Publisher.PublishJSONTo(ctx, n.Queue, job); err != nil {
			n.Logger.WithError(err).WithField("alert_id", a.ID).Warn("enqueue alert email failed")
		}
	}
}
