package enrollment

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/kfka"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ComputeProgress: round(100 * завершено / всего), не больше 100.
func ComputeProgress(completed, totalActive int) int {
	if totalActive <= 0 {
		return 0
	}
	progress := int(math.Round(float64(completed) / float64(totalActive) * 100))
	if progress > 100 {
		progress = 100
	}
	return progress
}

func EnrollInCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	courseID := vars["courseID"]
	if courseID == "" {
		http.Error(w, "ID курса не указан", http.StatusBadRequest)
		return
	}
	var course models.Course
	if err := initial.DB.First(&course, courseID).Error; err != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	if !course.IsPublished {
		http.Error(w, "Курс не опубликован", http.StatusBadRequest)
		return
	}
	price := course.Price
	if course.DiscountPrice > 0 {
		price = course.DiscountPrice
	}
	if price > 0 {
		http.Error(w, "Курс платный, запись через оплату", http.StatusBadRequest)
		return
	}

	var existing models.Enrollment
	result := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&existing)
	if result.Error == nil {
		http.Error(w, "Вы уже записаны на этот курс", http.StatusConflict)
		return
	}

	enrollment, err := CreateEnrollment(user.ID, parseUint(courseID))
	if err != nil {
		http.Error(w, "Не удалось записаться на курс", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollment)
}

// CreateEnrollment создает запись, пересчитывает счетчики и шлет
// подтверждение в Kafka. Используется и при бесплатной записи, и из вебхука.
func CreateEnrollment(userID, courseID uint) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		LastAccessedAt: time.Now(),
	}
	if err := initial.DB.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	var course models.Course
	initial.DB.First(&course, courseID)
	SyncEnrollmentCount(courseID)
	syncInstructorStudents(course.InstructorID)

	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_ADDRESS")),
		Topic:    "enrollment_notifications",
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()
	var poluchatel models.User
	initial.DB.First(&poluchatel, userID)
	event := kfka.NotificationEnrollment{
		UserID:     userID,
		CourseID:   courseID,
		Email:      poluchatel.Email,
		CourseName: course.TitleRu,
		Event:      "Запись на курс подтверждена",
	}
	if err := event.SendNotEnroll(kafkaWriter); err != nil {
		log.Println("Ошибка отправки Kafka:", err)
	}
	return &enrollment, nil
}

func CompleteLesson(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	courseID := vars["courseID"]
	lessonID := vars["lessonID"]

	var enrollment models.Enrollment
	result := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment)
	if result.Error != nil {
		http.Error(w, "Вы не записаны на этот курс", http.StatusNotFound)
		return
	}
	var lesson models.Lesson
	result = initial.DB.Where("course_id = ? AND is_active = ?", courseID, true).First(&lesson, lessonID)
	if result.Error != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}

	var done models.CompletedLesson
	result = initial.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).First(&done)
	if result.Error != nil {
		done = models.CompletedLesson{
			EnrollmentID: enrollment.ID,
			LessonID:     lesson.ID,
		}
		if err := initial.DB.Create(&done).Error; err != nil {
			http.Error(w, "Не удалось отметить урок", http.StatusInternalServerError)
			return
		}
	}

	completedCount := countCompletedActive(enrollment.ID)
	var totalActive int64
	initial.DB.Model(&models.Lesson{}).Where("course_id = ? AND is_active = ?", courseID, true).Count(&totalActive)

	enrollment.Progress = ComputeProgress(int(completedCount), int(totalActive))
	enrollment.LastAccessedAt = time.Now()
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}
	result = initial.DB.Save(&enrollment)
	if result.Error != nil {
		http.Error(w, "Не удалось обновить прогресс", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollment)
}

func GetMyEnrollments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	var enrollments []models.Enrollment
	result := initial.DB.Where("user_id = ?", user.ID).Preload("CompletedLessons").Find(&enrollments)
	if result.Error != nil {
		http.Error(w, "Не удалось получить записи", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollments)
}

func GetEnrollment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var enrollment models.Enrollment
	result := initial.DB.Where("user_id = ?", user.ID).
		Preload("CompletedLessons").First(&enrollment, id)
	if result.Error != nil {
		http.Error(w, "Запись о курсе не найдена", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollment)
}

// SyncCourseProgress пересчитывает прогресс всех записей курса после
// изменения набора активных уроков.
func SyncCourseProgress(courseID uint) {
	var totalActive int64
	initial.DB.Model(&models.Lesson{}).Where("course_id = ? AND is_active = ?", courseID, true).Count(&totalActive)
	var enrollments []models.Enrollment
	initial.DB.Where("course_id = ?", courseID).Find(&enrollments)
	for _, e := range enrollments {
		progress := ComputeProgress(int(countCompletedActive(e.ID)), int(totalActive))
		if progress != e.Progress {
			initial.DB.Model(&models.Enrollment{}).Where("id = ?", e.ID).Update("progress", progress)
		}
	}
}

// учитываются только завершения по активным урокам
func countCompletedActive(enrollmentID uint) int64 {
	var completed int64
	initial.DB.Model(&models.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Where("completed_lessons.enrollment_id = ? AND lessons.is_active = ?", enrollmentID, true).
		Count(&completed)
	return completed
}

// SyncEnrollmentCount пересчитывает счетчик записей курса.
func SyncEnrollmentCount(courseID uint) {
	var count int64
	initial.DB.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&count)
	initial.DB.Model(&models.Course{}).Where("id = ?", courseID).Update("enrollment_count", count)
}

func syncInstructorStudents(instructorID uint) {
	var studentsCount int64
	initial.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Distinct("enrollments.user_id").
		Count(&studentsCount)
	initial.DB.Model(&models.InstructorProfile{}).Where("id = ?", instructorID).
		Update("students_count", studentsCount)
}

func parseUint(s string) uint {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(u)
}
