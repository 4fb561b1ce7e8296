package kfka

import (
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
	"log"
)

type NotificationEnrollment struct {
	UserID     uint   `json:"user_id"`
	CourseID   uint   `json:"course_id"`
	Email      string `json:"email"`
	CourseName string `json:"course_name"`
	Event      string `json:"event"`
}

func (n *NotificationEnrollment) SendNotEnroll(writer *kafka.Writer) error {
	e, err := json.Marshal(n)
	if err != nil {
		log.Println("Ошибка перевод в json ", err)
	}
	return writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(n.Event),
		Value: e,
	})
}
