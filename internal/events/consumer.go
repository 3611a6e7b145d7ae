package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/services"
)

// Consumer читает переходы из NATS и сохраняет их через services.ClickHandler.
type Consumer struct {
	conn    *nats.Conn
	handler services.ClickHandler
	logger  *zap.Logger
	ctx     context.Context

	sub *nats.Subscription
}

func NewConsumer(conn *nats.Conn, handler services.ClickHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		conn:    conn,
		handler: handler,
		logger:  logger,
		ctx:     context.Background(),
	}
}

// Start подписывается на ClickSubject в группе ClickQueueGroup.
func (c *Consumer) Start(ctx context.Context) error {
	c.ctx = context.WithoutCancel(ctx)
	sub, err := c.conn.QueueSubscribe(ClickSubject, ClickQueueGroup, c.handle)
	if err != nil {
		return fmt.Errorf("nats: subscribe %s: %w", ClickSubject, err)
	}
	c.sub = sub
	return nil
}

// Stop дожидается обработки полученных сообщений и отписывается.
func (c *Consumer) Stop() error {
	if c.sub == nil {
		return nil
	}
	if err := c.sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("nats: drain subscription: %w", err)
	}
	return nil
}

func (c *Consumer) handle(msg *nats.Msg) {
	var event services.ClickEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.Error("failed to decode click event", zap.Error(err))
		return
	}
	if err := c.handler.RecordClick(c.ctx, event); err != nil {
		c.logger.Error("failed to store click event", zap.String("code", event.Code), zap.Error(err))
		return
	}
	c.logger.Debug("click event stored", zap.String("code", event.Code), zap.Time("time", event.Time))
}
