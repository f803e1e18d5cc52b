package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

// BookingStatusEvent событие смены статуса бронирования.
// Публикуется и при явных действиях акторов, и при ленивых переходах
// (expired/completed), чтобы даунстрим видел полный жизненный цикл.
type BookingStatusEvent struct {
	Type        string    `json:"type"` // booking_status_changed
	BookingID   int64     `json:"booking_id"`
	ChefID      int64     `json:"chef_id"`
	CustomerID  int64     `json:"customer_id"`
	Slot        string    `json:"slot"`
	SlotStart   string    `json:"slot_start"` // "HH:MM"
	SlotEnd     string    `json:"slot_end"`   // "HH:MM"
	BookingType string    `json:"booking_type"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher публикует события бронирований в Kafka
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher создает publisher поверх kafka.Writer
func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

// NewWriter создает kafka.Writer для топика событий бронирований
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

// PublishStatusChange публикует переход статуса бронирования.
// Ключ сообщения — ID бронирования, чтобы события одного бронирования
// попадали в одну партицию и сохраняли порядок.
func (p *Publisher) PublishStatusChange(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus) error {
	event := BookingStatusEvent{
		Type:        "booking_status_changed",
		BookingID:   b.ID,
		ChefID:      b.ChefID,
		CustomerID:  b.CustomerID,
		Slot:        string(b.Slot),
		SlotStart:   domain.SlotStartTimes[b.Slot].String(),
		SlotEnd:     domain.SlotEndTimes[b.Slot].String(),
		BookingType: string(b.BookingType),
		FromStatus:  string(from),
		ToStatus:    string(to),
		Timestamp:   time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal status event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(b.ID, 10)),
		Value: payload,
	})
}

// Close закрывает kafka writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
