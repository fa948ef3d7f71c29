package messagestream

import (
	"fmt"
	"time"

	"travel-booking-service/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type MessageStream struct {
	config amqp.Config
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) *MessageStream {
	uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	return &MessageStream{
		config: amqp.NewDurableQueueConfig(uri),
		logger: watermill.NewStdLogger(false, false),
	}
}

func (m *MessageStream) NewSubscriber() (message.Subscriber, error) {
	return amqp.NewSubscriber(m.config, m.logger)
}

func (m *MessageStream) NewPublisher() (message.Publisher, error) {
	return amqp.NewPublisher(m.config, m.logger)
}

// NewRouter wires one consumer handler with retry and a poison queue so a
// malformed message cannot wedge the topic.
func NewRouter(publisher message.Publisher, poisonTopic, handlerName, topic string, subscriber message.Subscriber, handlerFunc message.NoPublishHandlerFunc) (*message.Router, error) {
	logger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poison, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}

	retry := middleware.Retry{
		MaxRetries:      3,
		InitialInterval: time.Second,
		Multiplier:      2,
		Logger:          logger,
	}

	router.AddMiddleware(retry.Middleware, poison, middleware.Recoverer)
	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
