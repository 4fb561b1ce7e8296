package reviews

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"math"
	"net/http"
)

type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	courseID := vars["courseID"]
	var course models.Course
	if err := initial.DB.First(&course, courseID).Error; err != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	var enrolled models.Enrollment
	if err := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrolled).Error; err != nil {
		http.Error(w, "Отзыв могут оставлять только записанные на курс", http.StatusForbidden)
		return
	}
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "Оценка должна быть от 1 до 5", http.StatusBadRequest)
		return
	}
	var existing models.Review
	if err := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		http.Error(w, "Вы уже оставили отзыв на этот курс", http.StatusConflict)
		return
	}
	review := models.Review{
		UserID:   user.ID,
		CourseID: course.ID,
		Rating:   req.Rating,
		Text:     req.Text,
	}
	if err := initial.DB.Create(&review).Error; err != nil {
		http.Error(w, "Не удалось сохранить отзыв", http.StatusConflict)
		return
	}
	SyncCourseRating(course.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(review)
}

func GetCourseReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID := vars["courseID"]
	var reviews []models.Review
	result := initial.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&reviews)
	if result.Error != nil {
		http.Error(w, "Не удалось получить отзывы", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

func Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var review models.Review
	result := initial.DB.First(&review, id)
	if result.Error != nil {
		http.Error(w, "Отзыв не найден", http.StatusNotFound)
		return
	}
	if review.UserID != user.ID {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.Rating != 0 {
		if req.Rating < 1 || req.Rating > 5 {
			http.Error(w, "Оценка должна быть от 1 до 5", http.StatusBadRequest)
			return
		}
		review.Rating = req.Rating
	}
	if req.Text != "" {
		review.Text = req.Text
	}
	result = initial.DB.Save(&review)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить отзыв", http.StatusInternalServerError)
		return
	}
	SyncCourseRating(review.CourseID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(review)
}

func Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var review models.Review
	result := initial.DB.First(&review, id)
	if result.Error != nil {
		http.Error(w, "Отзыв не найден", http.StatusNotFound)
		return
	}
	if review.UserID != user.ID && user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	result = initial.DB.Delete(&models.Review{}, id)
	if result.Error != nil {
		http.Error(w, "Не удалось удалить отзыв", http.StatusInternalServerError)
		return
	}
	SyncCourseRating(review.CourseID)
	w.WriteHeader(http.StatusOK)
}

// AverageRating считается только по сохраненным отзывам, округление до сотых.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*100) / 100
}

// SyncCourseRating пересчитывает средний рейтинг и число отзывов курса.
func SyncCourseRating(courseID uint) {
	var reviews []models.Review
	initial.DB.Where("course_id = ?", courseID).Find(&reviews)
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}
	initial.DB.Model(&models.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"rating":        AverageRating(ratings),
		"total_reviews": len(ratings),
	})
}
