package quizzes

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

func CreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Нет прав", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	lessonID, _ := strconv.Atoi(vars["lessonID"])
	var lesson models.Lesson
	if err := initial.DB.First(&lesson, lessonID).Error; err != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}
	var quiz models.Quiz
	err := json.NewDecoder(r.Body).Decode(&quiz)
	if err != nil {
		http.Error(w, "Проблема с декодированием", http.StatusBadRequest)
		return
	}
	quiz.LessonID = uint(lessonID)
	if quiz.TotalAttempts < 0 {
		http.Error(w, "Количество попыток не может быть отрицательным", http.StatusBadRequest)
		return
	}
	quiz.TotalScore = SumScores(quiz.Questions)
	result := initial.DB.Create(&quiz)
	if result.Error != nil {
		http.Error(w, "Не удалось создать тест", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quiz)
}

func GetQuiz(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quizID := vars["id"]
	var quiz models.Quiz
	result := initial.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\"")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\"")
		}).
		First(&quiz, quizID)
	if result.Error != nil {
		http.Error(w, "Не удалось найти тест", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quiz)
}

func GetLessonQuiz(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonID := vars["lessonID"]
	var quiz models.Quiz
	result := initial.DB.Where("lesson_id = ?", lessonID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\"")
		}).
		Preload("Questions.Options").
		First(&quiz)
	if result.Error != nil {
		http.Error(w, "У урока нет теста", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quiz)
}

func UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Нет прав", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	quizID := vars["id"]
	lessonID, _ := strconv.Atoi(vars["lessonID"])
	var quiz models.Quiz
	result := initial.DB.First(&quiz, quizID)
	if result.Error != nil {
		http.Error(w, "Не удалось найти тест", http.StatusNotFound)
		return
	}
	if quiz.LessonID != uint(lessonID) {
		http.Error(w, "Тест не относится к этому уроку", http.StatusNotFound)
		return
	}
	var update models.Quiz
	err := json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if update.Title != "" {
		quiz.Title = update.Title
	}
	if update.Description != "" {
		quiz.Description = update.Description
	}
	if update.TotalAttempts != 0 {
		quiz.TotalAttempts = update.TotalAttempts
	}
	result = initial.DB.Save(&quiz)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить тест", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quiz)
}

func DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Нет прав", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	quizID := vars["id"]
	lessonID, _ := strconv.Atoi(vars["lessonID"])
	var quiz models.Quiz
	if err := initial.DB.First(&quiz, quizID).Error; err != nil {
		http.Error(w, "Не удалось найти тест", http.StatusNotFound)
		return
	}
	if quiz.LessonID != uint(lessonID) {
		http.Error(w, "Тест не относится к этому уроку", http.StatusNotFound)
		return
	}

	initial.DB.Where("quiz_id = ?", quizID).Delete(&models.QuizQuestion{})
	initial.DB.Where("quiz_id = ?", quizID).Delete(&models.QuizAttempt{})

	result := initial.DB.Delete(&models.Quiz{}, quizID)
	if result.Error != nil {
		http.Error(w, "Не удалось удалить тест", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
