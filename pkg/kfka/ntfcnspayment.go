package kfka

import (
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
	"log"
)

type NotificationPayment struct {
	PaymentID       uint    `json:"payment_id"`
	UserID          uint    `json:"user_id"`
	CourseID        uint    `json:"course_id"`
	Email           string  `json:"email"`
	CourseName      string  `json:"course_name"`
	Amount          float64 `json:"amount"`
	MerchantOrderID string  `json:"merchant_order_id"`
	Status          string  `json:"status"`
	Event           string  `json:"event"`
}

func (n *NotificationPayment) SendNotPayment(writer *kafka.Writer) error {
	e, err := json.Marshal(n)
	if err != nil {
		log.Println("Не удалось перевести в json")
	}
	return writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(n.Event),
		Value: e,
	})
}
