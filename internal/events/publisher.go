// Package events publishes property lifecycle messages to RabbitMQ so
// downstream consumers (search indexing, dashboards) can react to catalog
// changes without coupling to this service's database.
package events

import (
	"encoding/json"
	"strconv"

	"github.com/streadway/amqp"
	"github.com/yussufhh/Novella/internal/model"
	"go.uber.org/zap"
)

// propertyMessage is the wire format consumed by the search indexer.
type propertyMessage struct {
	Action     string `json:"action"` // "create", "update", "delete"
	PropertyID string `json:"property_id"`
}

// Publisher sends property messages to a durable queue. Publishing is
// best-effort: a broker failure is logged and never fails the request that
// triggered it.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	log        *zap.Logger
}

// NewPublisher connects to RabbitMQ and declares the property queue.
func NewPublisher(amqpURL, queueName string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if queueName == "" {
		queueName = "properties_queue"
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{connection: conn, channel: ch, queueName: queueName, log: log}, nil
}

// Close tears down the channel and connection.
func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		p.connection.Close()
	}
}

func (p *Publisher) publish(action string, propertyID uint) {
	msg := propertyMessage{
		Action:     action,
		PropertyID: strconv.FormatUint(uint64(propertyID), 10),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("Failed to marshal property message", zap.Error(err))
		return
	}
	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish property message",
			zap.String("action", action),
			zap.Uint("property_id", propertyID),
			zap.Error(err))
		return
	}
	p.log.Debug("Property message published",
		zap.String("action", action),
		zap.Uint("property_id", propertyID))
}

func (p *Publisher) PropertyCreated(property *model.Property) {
	p.publish("create", property.ID)
}

func (p *Publisher) PropertyUpdated(property *model.Property) {
	p.publish("update", property.ID)
}

func (p *Publisher) PropertyDeleted(id uint) {
	p.publish("delete", id)
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PropertyCreated(*model.Property) {}
func (NopPublisher) PropertyUpdated(*model.Property) {}
func (NopPublisher) PropertyDeleted(uint)            {}
