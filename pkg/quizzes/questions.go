package quizzes

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"net/http"
	"strconv"
)

func CreateQ(w http.ResponseWriter, r *http.Request) {
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
	quizID, _ := strconv.Atoi(vars["quizID"])
	var quiz models.Quiz
	if err := initial.DB.First(&quiz, quizID).Error; err != nil {
		http.Error(w, "Тест не найден", http.StatusNotFound)
		return
	}
	var question models.QuizQuestion
	err := json.NewDecoder(r.Body).Decode(&question)
	if err != nil {
		http.Error(w, "Проблема с декодированием", http.StatusBadRequest)
		return
	}
	if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
		http.Error(w, "Индекс правильного ответа вне диапазона вариантов", http.StatusBadRequest)
		return
	}
	if question.Score <= 0 {
		question.Score = 1
	}
	question.QuizID = uint(quizID)
	result := initial.DB.Create(&question)
	if result.Error != nil {
		http.Error(w, "Не удалось создать вопрос", http.StatusInternalServerError)
		return
	}
	syncTotalScore(uint(quizID))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(question)
}

func GetQs(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quizID := vars["quizID"]
	var questions []models.QuizQuestion
	result := initial.DB.Where("quiz_id = ?", quizID).Preload("Options").Order("\"order\"").Find(&questions)
	if result.Error != nil {
		http.Error(w, "Не удалось найти вопросы", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(questions)
}

func GetQ(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	var question models.QuizQuestion
	result := initial.DB.Preload("Options").First(&question, id)
	if result.Error != nil {
		http.Error(w, "Вопрос не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(question)
}

func UpdateQ(w http.ResponseWriter, r *http.Request) {
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
	id := vars["id"]
	var question models.QuizQuestion
	result := initial.DB.Preload("Options").First(&question, id)
	if result.Error != nil {
		http.Error(w, "Вопрос не найден", http.StatusNotFound)
		return
	}
	var update models.QuizQuestion
	err := json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if update.Question != "" {
		question.Question = update.Question
	}
	if update.Score != 0 {
		question.Score = update.Score
	}
	if update.Order != 0 {
		question.Order = update.Order
	}
	if len(update.Options) != 0 {
		initial.DB.Where("question_id = ?", question.ID).Delete(&models.QuizOption{})
		question.Options = update.Options
		question.CorrectOption = update.CorrectOption
	}
	if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
		http.Error(w, "Индекс правильного ответа вне диапазона вариантов", http.StatusBadRequest)
		return
	}
	result = initial.DB.Save(&question)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить вопрос", http.StatusInternalServerError)
		return
	}
	syncTotalScore(question.QuizID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(question)
}

func DeleteQ(w http.ResponseWriter, r *http.Request) {
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
	id := vars["id"]
	var question models.QuizQuestion
	result := initial.DB.First(&question, id)
	if result.Error != nil {
		http.Error(w, "Вопрос не найден", http.StatusNotFound)
		return
	}
	initial.DB.Where("question_id = ?", id).Delete(&models.QuizOption{})
	result = initial.DB.Delete(&models.QuizQuestion{}, id)
	if result.Error != nil {
		http.Error(w, "Не удалось удалить вопрос", http.StatusInternalServerError)
		return
	}
	syncTotalScore(question.QuizID)
	w.WriteHeader(http.StatusOK)
}

// syncTotalScore держит сумму баллов теста в актуальном состоянии.
func syncTotalScore(quizID uint) {
	var questions []models.QuizQuestion
	initial.DB.Where("quiz_id = ?", quizID).Find(&questions)
	initial.DB.Model(&models.Quiz{}).Where("id = ?", quizID).Update("total_score", SumScores(questions))
}

func SumScores(questions []models.QuizQuestion) int {
	total := 0
	for _, q := range questions {
		total += q.Score
	}
	return total
}
