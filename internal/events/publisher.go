package events

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/services"
)

// publisher часть *nats.Conn, нужная для публикации.
type publisher interface {
	Publish(subj string, data []byte) error
}

// Publisher отправляет переходы в NATS. Реализует services.ClickRecorder.
type Publisher struct {
	conn    publisher
	subject string
	logger  *zap.Logger
}

func NewPublisher(conn publisher, logger *zap.Logger) *Publisher {
	return &Publisher{conn: conn, subject: ClickSubject, logger: logger}
}

func (p *Publisher) Record(_ context.Context, event services.ClickEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode click event", zap.String("code", event.Code), zap.Error(err))
		return
	}
	if err = p.conn.Publish(p.subject, data); err != nil {
		p.logger.Error("failed to publish click event", zap.String("code", event.Code), zap.Error(err))
	}
}
