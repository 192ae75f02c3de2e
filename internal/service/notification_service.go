package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

type INotificationService interface {
	Start(ctx context.Context) error
}

type notificationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NotificationDelivery
	logger    logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

// Start begins consuming ingestion messages from the internal bus.
func (s *notificationService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	s.logger.Info("NotificationService", "Notification service started", map[string]interface{}{"topic": s.topicName})
	return nil
}

func (s *notificationService) processMessage(msg *message.Message) {
	var payload dto.ResourceIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal ingestion message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads never become valid, do not retry
		return
	}

	notif := entity.Notification{
		Id:      uuid.New(),
		UserId:  payload.UserId,
		Type:    "RESOURCE_INGESTED",
		Title:   "Resource ready",
		Message: fmt.Sprintf("%q has been processed into %d searchable chunks.", payload.Title, payload.ChunkCount),
		Data: map[string]interface{}{
			"resource_id": payload.ResourceId,
			"subject_id":  payload.SubjectId,
			"type":        payload.Type,
		},
		CreatedAt: time.Now(),
	}

	if s.delivery != nil {
		s.delivery.Send(payload.UserId, notif)
	}

	msg.Ack()
}
