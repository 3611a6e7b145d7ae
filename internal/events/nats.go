// Package events передает переходы по ссылкам через NATS.
package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// ClickSubject тема, в которую публикуются переходы.
	ClickSubject = "shortener.clicks"
	// ClickQueueGroup группа подписчиков. Каждый переход обрабатывает один экземпляр.
	ClickQueueGroup = "shortener-click-writers"

	defaultConnectTimeout = 5 * time.Second
	clientName            = "shortener"
)

// Connect подключается к NATS.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Timeout(defaultConnectTimeout),
		nats.Name(clientName),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect: %w", err)
	}
	return conn, nil
}
