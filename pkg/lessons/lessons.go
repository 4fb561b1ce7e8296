package lessons

import (
	"encoding/json"
	"eduplace-go/pkg/enrollment"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/kfka"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	"log"
	"net/http"
	"os"
	"strconv"
)

func CreateLes(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	courseID, err := strconv.Atoi(vars["courseID"])
	if err != nil {
		http.Error(w, "Некорректный courseID", http.StatusBadRequest)
		return
	}
	sectionID, err := strconv.Atoi(vars["sectionID"])
	if err != nil {
		http.Error(w, "Некорректный sectionID", http.StatusBadRequest)
		return
	}
	var section models.Section
	if err := initial.DB.Where("course_id = ?", courseID).First(&section, sectionID).Error; err != nil {
		http.Error(w, "Раздел не найден", http.StatusNotFound)
		return
	}

	var lesson models.Lesson
	err = json.NewDecoder(r.Body).Decode(&lesson)
	if err != nil {
		http.Error(w, "Проблема с декодированием", http.StatusBadRequest)
		return
	}
	if lesson.Title == "" {
		http.Error(w, "Название урока не указано", http.StatusBadRequest)
		return
	}
	lesson.CourseID = uint(courseID)
	lesson.SectionID = uint(sectionID)
	lesson.IsActive = true

	result := initial.DB.Create(&lesson)
	if result.Error != nil {
		http.Error(w, "Не удалось создать урок", http.StatusInternalServerError)
		return
	}
	go notifyEnrolled(lesson, "course_notifications",
		fmt.Sprintf("Добавлен новый урок: %v", lesson.Title))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lesson)
}

func GetLessons(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionID"]

	var lessons []models.Lesson
	result := initial.DB.Where("section_id = ? AND is_active = ?", sectionID, true).
		Preload("Files").Preload("Videos").Preload("Quiz").
		Order("\"order\"").Find(&lessons)
	if result.Error != nil {
		http.Error(w, "Не удалось получить уроки раздела", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lessons)
}

func GetLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonID := vars["id"]
	var lesson models.Lesson
	result := initial.DB.Preload("Files").Preload("Videos").Preload("Quiz").First(&lesson, lessonID)
	if result.Error != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lesson)
}

func UpdateLes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	sectionID := vars["sectionID"]
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var lesson models.Lesson
	result := initial.DB.Where("section_id = ?", sectionID).First(&lesson, id)
	if result.Error != nil {
		http.Error(w, "Не удалось найти урок", http.StatusNotFound)
		return
	}
	var update models.Lesson
	err := json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if update.Title != "" {
		lesson.Title = update.Title
	}
	if update.Description != "" {
		lesson.Description = update.Description
	}
	if update.Order != 0 {
		lesson.Order = update.Order
	}
	lesson.IsFree = update.IsFree
	result = initial.DB.Save(&lesson)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить урок", http.StatusInternalServerError)
		return
	}
	go notifyEnrolled(lesson, "course_update_notifications",
		fmt.Sprintf("Урок: %v обновлен", lesson.Title))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lesson)
}

// DeactivateLesson скрывает урок и сразу пересчитывает прогресс записей,
// чтобы он не зависал до следующего завершения урока студентом.
func DeactivateLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Нет доступа", http.StatusForbidden)
		return
	}
	var lesson models.Lesson
	if err := initial.DB.First(&lesson, id).Error; err != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}
	result := initial.DB.Model(&models.Lesson{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		http.Error(w, "Ошибка при скрытии урока", http.StatusInternalServerError)
		return
	}
	enrollment.SyncCourseProgress(lesson.CourseID)
	w.WriteHeader(http.StatusOK)
}

func notifyEnrolled(lesson models.Lesson, topic string, eventType string) {
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_ADDRESS")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()
	var enrollments []models.Enrollment
	initial.DB.Where("course_id = ?", lesson.CourseID).Find(&enrollments)
	var course models.Course
	initial.DB.First(&course, lesson.CourseID)
	for _, enrollment := range enrollments {
		var poluchatel models.User
		initial.DB.First(&poluchatel, enrollment.UserID)
		event := kfka.NotificationLesson{
			UserID:      enrollment.UserID,
			CourseID:    lesson.CourseID,
			LessonID:    lesson.ID,
			CourseName:  course.TitleRu,
			Lesson:      lesson.Title,
			Description: lesson.Description,
			Email:       poluchatel.Email,
			EventType:   eventType,
		}
		if err := event.SendNotif(kafkaWriter); err != nil {
			log.Println("Ошибка отправки Kafka:", err)
		}
	}
}
