package wishlist

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"net/http"
)

func Add(w http.ResponseWriter, r *http.Request) {
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
	var existing models.WishlistItem
	if err := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		http.Error(w, "Курс уже в избранном", http.StatusConflict)
		return
	}
	item := models.WishlistItem{
		UserID:   user.ID,
		CourseID: course.ID,
	}
	if err := initial.DB.Create(&item).Error; err != nil {
		http.Error(w, "Не удалось добавить в избранное", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	courseID := vars["courseID"]
	result := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		http.Error(w, "Не удалось убрать из избранного", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Курса нет в избранном", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func GetMy(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	var items []models.WishlistItem
	result := initial.DB.Where("user_id = ?", user.ID).Find(&items)
	if result.Error != nil {
		http.Error(w, "Не удалось получить избранное", http.StatusInternalServerError)
		return
	}
	var courses []models.Course
	for _, item := range items {
		var course models.Course
		if err := initial.DB.First(&course, item.CourseID).Error; err == nil {
			courses = append(courses, course)
		}
	}
	if courses == nil {
		courses = make([]models.Course, 0)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}
