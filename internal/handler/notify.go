package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/workshift-tools/workshift/backend/internal/domain"
)

// publishMail 把邮件消息投递到通知队列，由 cmd/mail 消费后发送
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// notifyWorkshiftChanged 在排班配置变更后通知其负责人。
// 通知失败不应让变更本身失败，调用方只记录日志
func (h *Handler) notifyWorkshiftChanged(ws *domain.Workshift, operation string) error {
	if ws.OwnerEmail == "" {
		return nil
	}

	return h.publishMail(domain.MailMessage{
		Type: "workshift_changed",
		To:   ws.OwnerEmail,
		Data: domain.WorkshiftChangedMailData{
			WorkshiftName: ws.Name,
			Operation:     operation,
			Pattern:       ws.Pattern,
			PatternStart:  ws.PatternStart,
		},
	})
}
