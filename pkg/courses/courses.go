package courses

import (
	"encoding/json"
	"eduplace-go/pkg/categories"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"eduplace-go/pkg/search"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

type CourseRequest struct {
	TitleRu       string  `json:"title_ru"`
	TitleEn       string  `json:"title_en"`
	DescriptionRu string  `json:"description_ru"`
	DescriptionEn string  `json:"description_en"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discount_price"`
	CategoryID    uint    `json:"category_id"`
}

func Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var profile models.InstructorProfile
	result := initial.DB.Where("user_id = ?", user.ID).First(&profile)
	if result.Error != nil || !profile.Approved {
		http.Error(w, "Профиль преподавателя не подтвержден", http.StatusForbidden)
		return
	}
	var req CourseRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.TitleRu == "" {
		http.Error(w, "Название курса не указано", http.StatusBadRequest)
		return
	}
	if req.DiscountPrice != 0 && req.DiscountPrice >= req.Price {
		http.Error(w, "Цена со скидкой должна быть меньше обычной", http.StatusBadRequest)
		return
	}
	var category models.Category
	if err := initial.DB.First(&category, req.CategoryID).Error; err != nil {
		http.Error(w, "Категория не найдена", http.StatusNotFound)
		return
	}
	courseSlug := slug.Make(req.TitleEn)
	if req.TitleEn == "" {
		courseSlug = slug.Make(req.TitleRu)
	}
	var count int64
	initial.DB.Model(&models.Course{}).Where("slug = ?", courseSlug).Count(&count)
	if count > 0 {
		http.Error(w, "Курс с таким слагом уже есть", http.StatusConflict)
		return
	}
	course := models.Course{
		TitleRu:       req.TitleRu,
		TitleEn:       req.TitleEn,
		DescriptionRu: req.DescriptionRu,
		DescriptionEn: req.DescriptionEn,
		Slug:          courseSlug,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		InstructorID:  profile.ID,
		CategoryID:    req.CategoryID,
		Status:        "черновик",
	}
	result = initial.DB.Create(&course)
	if result.Error != nil {
		http.Error(w, "Не удалось создать курс", http.StatusInternalServerError)
		return
	}
	categories.SyncCoursesCount(course.CategoryID)
	SyncInstructorCounts(profile.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func GetAll(w http.ResponseWriter, r *http.Request) {
	q := initial.DB.Where("is_published = ?", true)
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var courses []models.Course
	result := q.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&courses)
	if result.Error != nil {
		http.Error(w, "Не удалось получить курсы", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

func GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "ID курса не указан", http.StatusBadRequest)
		return
	}
	var course models.Course
	result := initial.DB.First(&course, id)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func GetBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseSlug := vars["slug"]
	var course models.Course
	result := initial.DB.Where("slug = ?", courseSlug).First(&course)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// GetCourseDetails отдает курс вместе с разделами и уроками по порядку.
func GetCourseDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	var course models.Course
	result := initial.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("\"order\"")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("\"order\"")
		}).
		Preload("Sections.Lessons.Quiz").
		First(&course, id)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var course models.Course
	result := initial.DB.First(&course, id)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	if !canManage(user, course) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var req CourseRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.TitleRu != "" {
		course.TitleRu = req.TitleRu
	}
	if req.TitleEn != "" {
		course.TitleEn = req.TitleEn
	}
	if req.DescriptionRu != "" {
		course.DescriptionRu = req.DescriptionRu
	}
	if req.DescriptionEn != "" {
		course.DescriptionEn = req.DescriptionEn
	}
	if req.Price != 0 {
		course.Price = req.Price
	}
	if req.DiscountPrice != 0 {
		course.DiscountPrice = req.DiscountPrice
	}
	if course.DiscountPrice != 0 && course.DiscountPrice >= course.Price {
		http.Error(w, "Цена со скидкой должна быть меньше обычной", http.StatusBadRequest)
		return
	}
	oldCategory := course.CategoryID
	if req.CategoryID != 0 && req.CategoryID != course.CategoryID {
		var category models.Category
		if err := initial.DB.First(&category, req.CategoryID).Error; err != nil {
			http.Error(w, "Категория не найдена", http.StatusNotFound)
			return
		}
		course.CategoryID = req.CategoryID
	}
	result = initial.DB.Save(&course)
	if result.Error != nil {
		http.Error(w, "Не удалось обновить курс", http.StatusInternalServerError)
		return
	}
	if course.CategoryID != oldCategory {
		categories.SyncCoursesCount(oldCategory)
		categories.SyncCoursesCount(course.CategoryID)
	}
	if course.IsPublished {
		go search.IndexCourse(course, course.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func Publish(w http.ResponseWriter, r *http.Request) {
	setPublished(w, r, true)
}

func Unpublish(w http.ResponseWriter, r *http.Request) {
	setPublished(w, r, false)
}

func setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var course models.Course
	result := initial.DB.First(&course, id)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	if !canManage(user, course) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	course.IsPublished = published
	if published {
		course.Status = "опубликован"
	} else {
		course.Status = "снят с публикации"
	}
	result = initial.DB.Save(&course)
	if result.Error != nil {
		http.Error(w, "Не удалось обновить курс", http.StatusInternalServerError)
		return
	}
	if published {
		go search.IndexCourse(course, course.ID)
	} else {
		go search.DeleteCourseFromIndex(course.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	id := vars["id"]
	var course models.Course
	result := initial.DB.First(&course, id)
	if result.Error != nil {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	result = initial.DB.Delete(&models.Course{}, id)
	if result.Error != nil {
		http.Error(w, "Не удалось удалить курс", http.StatusInternalServerError)
		return
	}
	categories.SyncCoursesCount(course.CategoryID)
	SyncInstructorCounts(course.InstructorID)
	go search.DeleteCourseFromIndex(course.ID)
	w.WriteHeader(http.StatusOK)
}

func GetInstructorCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	var profile models.InstructorProfile
	result := initial.DB.Where("user_id = ?", user.ID).First(&profile)
	if result.Error != nil {
		http.Error(w, "Профиль преподавателя не найден", http.StatusNotFound)
		return
	}
	var courses []models.Course
	result = initial.DB.Where("instructor_id = ?", profile.ID).Order("updated_at desc").Find(&courses)
	if result.Error != nil {
		http.Error(w, "Не удалось получить курсы", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

// SyncInstructorCounts пересчитывает количество курсов и студентов преподавателя.
func SyncInstructorCounts(instructorID uint) {
	var coursesCount int64
	initial.DB.Model(&models.Course{}).Where("instructor_id = ?", instructorID).Count(&coursesCount)
	var studentsCount int64
	initial.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Distinct("enrollments.user_id").
		Count(&studentsCount)
	initial.DB.Model(&models.InstructorProfile{}).Where("id = ?", instructorID).Updates(map[string]interface{}{
		"courses_count":  coursesCount,
		"students_count": studentsCount,
	})
}

func canManage(user models.User, course models.Course) bool {
	if user.Role == string(middleware.Admin) {
		return true
	}
	if user.Role != string(middleware.Instructor) {
		return false
	}
	var profile models.InstructorProfile
	if err := initial.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return false
	}
	return profile.ID == course.InstructorID
}
