package payments

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"net/http"
	"os"
)

func CreatePayment(w http.ResponseWriter, r *http.Request) {
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
	if price <= 0 {
		http.Error(w, "Курс бесплатный, оплата не требуется", http.StatusBadRequest)
		return
	}

	var enrolled models.Enrollment
	if err := initial.DB.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrolled).Error; err == nil {
		http.Error(w, "Вы уже записаны на этот курс", http.StatusConflict)
		return
	}
	var existing models.Payment
	result := initial.DB.Where("user_id = ? AND course_id = ? AND status <> ?", user.ID, course.ID, "ошибка").First(&existing)
	if result.Error == nil {
		http.Error(w, "Оплата по этому курсу уже создана", http.StatusConflict)
		return
	}

	payment := models.Payment{
		UserID:          user.ID,
		CourseID:        course.ID,
		Amount:          price,
		MerchantOrderID: uuid.NewString(),
		Status:          "ожидает",
	}
	if err := initial.DB.Create(&payment).Error; err != nil {
		http.Error(w, "Не удалось создать оплату", http.StatusConflict)
		return
	}

	resp := struct {
		Payment     models.Payment `json:"payment"`
		RedirectURL string         `json:"redirect_url"`
	}{
		Payment:     payment,
		RedirectURL: os.Getenv("GATEWAY_URL") + "?merchant_order_id=" + payment.MerchantOrderID,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func GetMyPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	var payments []models.Payment
	result := initial.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&payments)
	if result.Error != nil {
		http.Error(w, "Не удалось получить оплаты", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func GetPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var payment models.Payment
	result := initial.DB.First(&payment, id)
	if result.Error != nil {
		http.Error(w, "Оплата не найдена", http.StatusNotFound)
		return
	}
	if payment.UserID != user.ID && user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}
