package admin

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"net/http"
)

func GetUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var users []models.User
	result := initial.DB.Order("id").Find(&users)
	if result.Error != nil {
		http.Error(w, "Не удалось получить пользователей", http.StatusInternalServerError)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func GetInstructors(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var profiles []models.InstructorProfile
	result := initial.DB.Order("id").Find(&profiles)
	if result.Error != nil {
		http.Error(w, "Не удалось получить преподавателей", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

// CreateContactMessage доступен без авторизации, форма обратной связи.
func CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if msg.Name == "" || msg.Email == "" || msg.Text == "" {
		http.Error(w, "Имя, почта и текст обязательны", http.StatusBadRequest)
		return
	}
	msg.IsRead = false
	result := initial.DB.Create(&msg)
	if result.Error != nil {
		http.Error(w, "Не удалось сохранить сообщение", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func GetContactMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var msgs []models.ContactMessage
	result := initial.DB.Order("created_at desc").Find(&msgs)
	if result.Error != nil {
		http.Error(w, "Не удалось получить сообщения", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msgs)
}

// ReadContactMessage возвращает сообщение и помечает его прочитанным.
func ReadContactMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var msg models.ContactMessage
	result := initial.DB.First(&msg, id)
	if result.Error != nil {
		http.Error(w, "Сообщение не найдено", http.StatusNotFound)
		return
	}
	if !msg.IsRead {
		msg.IsRead = true
		initial.DB.Save(&msg)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

func DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	result := initial.DB.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		http.Error(w, "Не удалось удалить сообщение", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Сообщение не найдено", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
