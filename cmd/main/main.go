package main

import (
	"context"
	"eduplace-go/pkg/email"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/kfka"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/routes"
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"log"
	"net/http"
)

func init() {
	initial.LoadEnvComp()
	initial.ConDB()
	initial.SyncDB()
	initial.InitES()
	initial.InitEScs()
	initial.InitMinio()
}

func main() {
	r := mux.NewRouter()
	routes.SetupAuth(r)
	routes.SetupPublic(r)
	meRouter := r.PathPrefix("/api").Subrouter()
	meRouter.Use(middleware.AuthMiddleware)
	routes.SetupMe(meRouter)
	routes.SetupEnrollment(meRouter)
	routes.SetupAdmin(meRouter)
	categoriesRouter := r.PathPrefix("/api/categories").Subrouter()
	categoriesRouter.Use(middleware.AuthMiddleware)
	routes.SetupCategories(categoriesRouter)
	coursesRouter := r.PathPrefix("/api/courses").Subrouter()
	coursesRouter.Use(middleware.AuthMiddleware)
	routes.SetupCourses(coursesRouter)
	sectionsRouter := r.PathPrefix("/api/courses/{courseID}").Subrouter()
	sectionsRouter.Use(middleware.AuthMiddleware)
	routes.SetupSections(sectionsRouter)
	lessonRouter := r.PathPrefix("/api/courses/{courseID}").Subrouter()
	lessonRouter.Use(middleware.AuthMiddleware)
	routes.SetupLessons(lessonRouter)
	quizRouter := r.PathPrefix("/api/courses/{courseID}/lessons/{lessonID}").Subrouter()
	quizRouter.Use(middleware.AuthMiddleware)
	routes.SetupQuizzes(quizRouter)
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5176"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	go func() {
		kafkaReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "course_notifications",
			GroupID: "notifications-consumer-group",
		})
		defer kafkaReader.Close()
		for {
			m, err := kafkaReader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("Ошибка прочтения сообщения Kafka: %s\n", err)
				continue
			}
			var event kfka.NotificationLesson
			err = json.Unmarshal(m.Value, &event)
			if err != nil {
				log.Printf("Ошибка json -> struct: %s\n", err)
				continue
			}
			emailD := email.EmailData{
				CourseName:        event.CourseName,
				LessonTitle:       event.Lesson,
				LessonDescription: event.Description,
			}
			htmlBody, err := emailD.GenerateEmailHTML("NewLesson.html")
			if err != nil {
				log.Println("Ошибка генерации письма:", err)
				continue
			}
			to := []string{event.Email}
			subject := "Новый урок на курсе " + event.CourseName
			if err = email.SendEmail(to, subject, htmlBody); err != nil {
				log.Println("Ошибка отправки email:", err)
			}
		}
	}()
	go func() {
		kafkaReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "course_update_notifications",
			GroupID: "notifications-update-consumer-group",
		})
		defer kafkaReader.Close()
		for {
			m, err := kafkaReader.ReadMessage(context.Background())
			if err != nil {
				log.Println("Не удалось прочитать сообщение Kafka", err)
				continue
			}
			var notification kfka.NotificationLesson
			err = json.Unmarshal(m.Value, &notification)
			if err != nil {
				log.Println("Не удалость преобразовать в структуру", err)
				continue
			}
			emailD := email.EmailData{
				CourseName:        notification.CourseName,
				LessonTitle:       notification.Lesson,
				LessonDescription: notification.Description,
			}
			gHtml, err := emailD.GenerateEmailHTML("UpdateLesson.html")
			if err != nil {
				log.Println("Ошибка в генерации html ", err)
				continue
			}
			to := []string{notification.Email}
			object := "Обновление на курсе " + notification.CourseName
			err = email.SendEmail(to, object, gHtml)
			if err != nil {
				log.Println("Не удалось отправить письмо ", err)
			}
		}
	}()
	go func() {
		kafkaReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "enrollment_notifications",
			GroupID: "enrollment-notifications-consumer-group",
		})
		defer kafkaReader.Close()
		for {
			m, err := kafkaReader.ReadMessage(context.Background())
			if err != nil {
				log.Println("Не удалось прочитать сообщение Kafka: ", err)
				continue
			}
			var event kfka.NotificationEnrollment
			err = json.Unmarshal(m.Value, &event)
			if err != nil {
				log.Println("Не удалось перевести json в структуру: ", err)
				continue
			}
			emailD := email.EmailData{
				CourseName: event.CourseName,
			}
			htmlq, err := emailD.GenerateEmailHTML("EnrollmentWelcome.html")
			if err != nil {
				log.Println("Не удалось перевести в строку ", err)
				continue
			}
			to := []string{event.Email}
			object := "Вы записаны на курс " + event.CourseName
			err = email.SendEmail(to, object, htmlq)
			if err != nil {
				log.Println("Не удалось отправить на почту ", err)
			}
		}
	}()
	go func() {
		kafkaReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "payment_notifications",
			GroupID: "payment-notifications-consumer-group",
		})
		defer kafkaReader.Close()
		for {
			m, err := kafkaReader.ReadMessage(context.Background())
			if err != nil {
				log.Println("Не удалось прочитать сообщение Kafka: ", err)
				continue
			}
			var event kfka.NotificationPayment
			err = json.Unmarshal(m.Value, &event)
			if err != nil {
				log.Println("Не удалось перевести json в структуру: ", err)
				continue
			}
			emailD := email.EmailData{
				CourseName:      event.CourseName,
				Amount:          event.Amount,
				MerchantOrderID: event.MerchantOrderID,
			}
			htmlq, err := emailD.GenerateEmailHTML("PaymentReceipt.html")
			if err != nil {
				log.Println("Не удалось перевести в строку ", err)
				continue
			}
			to := []string{event.Email}
			object := fmt.Sprintf("Чек об оплате курса %s", event.CourseName)
			err = email.SendEmail(to, object, htmlq)
			if err != nil {
				log.Println("Не удалось отправить на почту ", err)
			}
		}
	}()
	handler := c.Handler(r)
	log.Printf("Сервер запущен на http://localhost:8080")
	err := http.ListenAndServe(":8080", handler)
	if err != nil {
		log.Fatal("Ошибка запуска сервера:", err)
	}
}
