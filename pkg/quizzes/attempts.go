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

type Answer struct {
	QuestionID uint `json:"question_id"`
	Selected   int  `json:"selected"`
}

type AttemptRequest struct {
	Answers []Answer `json:"answers"`
}

type AttemptDetail struct {
	QuestionID uint `json:"question_id"`
	Selected   int  `json:"selected"`
	Correct    bool `json:"correct"`
	Score      int  `json:"score"`
}

type AttemptResponse struct {
	ObtainedScore int             `json:"obtained_score"`
	TotalScore    int             `json:"total_score"`
	Percentage    int             `json:"percentage"`
	Attempt       int             `json:"attempt"`
	Details       []AttemptDetail `json:"details"`
}

// ScoreAttempt сравнивает индекс выбранного варианта с правильным,
// балл начисляется только при точном совпадении.
func ScoreAttempt(questions []models.QuizQuestion, answers []Answer) (int, []AttemptDetail) {
	correct := make(map[uint]models.QuizQuestion, len(questions))
	for _, q := range questions {
		correct[q.ID] = q
	}
	obtained := 0
	details := make([]AttemptDetail, 0, len(answers))
	for _, ans := range answers {
		q, ok := correct[ans.QuestionID]
		isCorrect := ok && ans.Selected == q.CorrectOption
		score := 0
		if isCorrect {
			score = q.Score
			obtained += score
		}
		details = append(details, AttemptDetail{
			QuestionID: ans.QuestionID,
			Selected:   ans.Selected,
			Correct:    isCorrect,
			Score:      score,
		})
	}
	return obtained, details
}

// Percentage округляется вниз.
func Percentage(obtained, total int) int {
	if total <= 0 {
		return 0
	}
	return obtained * 100 / total
}

// AttemptsExceeded: лимит 0 означает без ограничений.
func AttemptsExceeded(used int64, totalAttempts int) bool {
	return totalAttempts > 0 && used >= int64(totalAttempts)
}

func SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	quizID, _ := strconv.Atoi(vars["quizID"])
	lessonID, _ := strconv.Atoi(vars["lessonID"])
	courseID := vars["courseID"]

	var quiz models.Quiz
	result := initial.DB.First(&quiz, quizID)
	if result.Error != nil {
		http.Error(w, "Тест не найден", http.StatusNotFound)
		return
	}
	if quiz.LessonID != uint(lessonID) {
		http.Error(w, "Тест не относится к этому уроку", http.StatusNotFound)
		return
	}
	var lesson models.Lesson
	if err := initial.DB.Where("course_id = ?", courseID).First(&lesson, quiz.LessonID).Error; err != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}
	var enrolled models.Enrollment
	if err := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrolled).Error; err != nil {
		http.Error(w, "Тест доступен только записанным на курс", http.StatusForbidden)
		return
	}

	var used int64
	initial.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND lesson_id = ?", user.ID, quizID, quiz.LessonID).
		Count(&used)
	if AttemptsExceeded(used, quiz.TotalAttempts) {
		http.Error(w, "Превышено число попыток", http.StatusForbidden)
		return
	}

	var req AttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Ошибка декодирования", http.StatusBadRequest)
		return
	}

	var questions []models.QuizQuestion
	initial.DB.Where("quiz_id = ?", quizID).Find(&questions)

	obtained, details := ScoreAttempt(questions, req.Answers)
	total := SumScores(questions)

	attempt := models.QuizAttempt{
		UserID:        user.ID,
		QuizID:        uint(quizID),
		LessonID:      quiz.LessonID,
		Attempt:       int(used) + 1,
		ObtainedScore: obtained,
		TotalScore:    total,
		Percentage:    Percentage(obtained, total),
	}
	for _, d := range details {
		attempt.Answers = append(attempt.Answers, models.AttemptAnswer{
			QuestionID: d.QuestionID,
			Selected:   d.Selected,
			Correct:    d.Correct,
			Score:      d.Score,
		})
	}
	if err := initial.DB.Create(&attempt).Error; err != nil {
		http.Error(w, "Не удалось сохранить попытку", http.StatusInternalServerError)
		return
	}

	resp := AttemptResponse{
		ObtainedScore: obtained,
		TotalScore:    total,
		Percentage:    attempt.Percentage,
		Attempt:       attempt.Attempt,
		Details:       details,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func GetMyAttempts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	quizID := vars["quizID"]
	var attempts []models.QuizAttempt
	result := initial.DB.Where("user_id = ? AND quiz_id = ?", user.ID, quizID).
		Preload("Answers").Order("attempt").Find(&attempts)
	if result.Error != nil {
		http.Error(w, "Не удалось получить попытки", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(attempts)
}

func GetBestAttempt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	quizID := vars["quizID"]
	var attempt models.QuizAttempt
	result := initial.DB.Where("user_id = ? AND quiz_id = ?", user.ID, quizID).
		Order("percentage desc, attempt").First(&attempt)
	if result.Error != nil {
		http.Error(w, "Попыток еще не было", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(attempt)
}
