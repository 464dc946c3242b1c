package events

import (
	"context"

	"venued/pkg/kafka"
	"venued/pkg/logger"
	"venued/pkg/model"
)

const (
	Topic = "venued.reservations"

	EventReservationAdmitted  = "reservation.admitted"
	EventReservationCancelled = "reservation.cancelled"
)

// Publisher announces admission outcomes to downstream consumers
// (notifications, reporting). Publishing happens after the reservation is
// durably recorded; a delivery failure is logged, never rolled back.
type Publisher interface {
	ReservationAdmitted(ctx context.Context, reservation *model.Reservation) error
	ReservationCancelled(ctx context.Context, reservation *model.Reservation) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

// Messages are keyed by venue ID so per-venue admission order survives
// partitioning.
func (p *kafkaPublisher) ReservationAdmitted(ctx context.Context, reservation *model.Reservation) error {
	msg := kafka.NewMessage().
		WithKey(reservation.VenueID).
		WithEventType(EventReservationAdmitted).
		WithSource("admissions").
		WithValue(reservation).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, reservation *model.Reservation) error {
	msg := kafka.NewMessage().
		WithKey(reservation.VenueID).
		WithEventType(EventReservationCancelled).
		WithSource("admissions").
		WithValue(reservation).
		Build()

	return p.producer.Publish(ctx, msg)
}
