package application

import "context"

// Publisher puts JSON messages on a named queue. *helpers.RabbitPublisher
// implements it.
type Publisher interface {
	PublishJSONTo(ctx context.Context, queue string, body any) error
}
