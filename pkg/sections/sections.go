package sections

import (
	"encoding/json"
	"eduplace-go/pkg/enrollment"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

func CreateSection(w http.ResponseWriter, r *http.Request) {
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
	var course models.Course
	if err := initial.DB.First(&course, courseID).Error; err != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	var section models.Section
	err = json.NewDecoder(r.Body).Decode(&section)
	if err != nil {
		http.Error(w, "Проблема с декодированием", http.StatusBadRequest)
		return
	}
	if section.Title == "" {
		http.Error(w, "Название раздела не указано", http.StatusBadRequest)
		return
	}
	section.CourseID = uint(courseID)
	section.IsActive = true
	result := initial.DB.Create(&section)
	if result.Error != nil {
		http.Error(w, "Не удалось создать раздел", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(section)
}

func GetSections(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID := vars["courseID"]
	var sections []models.Section
	result := initial.DB.Where("course_id = ? AND is_active = ?", courseID, true).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("\"order\"")
		}).
		Order("\"order\"").Find(&sections)
	if result.Error != nil {
		http.Error(w, "Не удалось получить разделы курса", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sections)
}

func GetSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	var section models.Section
	result := initial.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("\"order\"")
	}).First(&section, id)
	if result.Error != nil {
		http.Error(w, "Раздел не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(section)
}

func UpdateSection(w http.ResponseWriter, r *http.Request) {
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
	id := vars["id"]
	courseID := vars["courseID"]
	var section models.Section
	result := initial.DB.Where("course_id = ?", courseID).First(&section, id)
	if result.Error != nil {
		http.Error(w, "Не удалось найти раздел", http.StatusNotFound)
		return
	}
	var update models.Section
	err := json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if update.Title != "" {
		section.Title = update.Title
	}
	if update.Order != 0 {
		section.Order = update.Order
	}
	result = initial.DB.Save(&section)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить раздел", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(section)
}

// DeactivateSection прячет раздел вместе с его уроками, записи остаются в базе.
func DeactivateSection(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Нет доступа", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var section models.Section
	if err := initial.DB.First(&section, id).Error; err != nil {
		http.Error(w, "Раздел не найден", http.StatusNotFound)
		return
	}
	result := initial.DB.Model(&models.Section{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		http.Error(w, "Ошибка при скрытии раздела", http.StatusInternalServerError)
		return
	}
	initial.DB.Model(&models.Lesson{}).Where("section_id = ?", id).Update("is_active", false)
	enrollment.SyncCourseProgress(section.CourseID)
	w.WriteHeader(http.StatusOK)
}
