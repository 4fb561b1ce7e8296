package categories

import (
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"net/http"
	"strconv"
)

type CategoryRequest struct {
	NameRu        string `json:"name_ru"`
	NameEn        string `json:"name_en"`
	DescriptionRu string `json:"description_ru"`
	DescriptionEn string `json:"description_en"`
	ParentID      *uint  `json:"parent_id"`
	Order         int    `json:"order"`
}

func Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	var req CategoryRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.NameRu == "" {
		http.Error(w, "Название категории не указано", http.StatusBadRequest)
		return
	}
	if req.ParentID != nil {
		var parent models.Category
		if err := initial.DB.First(&parent, *req.ParentID).Error; err != nil {
			http.Error(w, "Родительская категория не найдена", http.StatusNotFound)
			return
		}
	}
	catSlug := slug.Make(req.NameEn)
	if req.NameEn == "" {
		catSlug = slug.Make(req.NameRu)
	}
	if slugTaken(catSlug, req.ParentID, 0) {
		http.Error(w, "Категория с таким слагом уже есть у этого родителя", http.StatusConflict)
		return
	}
	category := models.Category{
		NameRu:        req.NameRu,
		NameEn:        req.NameEn,
		DescriptionRu: req.DescriptionRu,
		DescriptionEn: req.DescriptionEn,
		Slug:          catSlug,
		ParentID:      req.ParentID,
		Order:         req.Order,
		IsActive:      true,
	}
	result := initial.DB.Create(&category)
	if result.Error != nil {
		http.Error(w, "Не удалось создать категорию", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

func GetAll(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	result := initial.DB.Order("\"order\", id").Find(&categories)
	if result.Error != nil {
		http.Error(w, "Не удалось получить категории", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func GetTree(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	result := initial.DB.Where("is_active = ?", true).Find(&categories)
	if result.Error != nil {
		http.Error(w, "Не удалось получить категории", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildTree(categories))
}

func GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "ID категории не указан", http.StatusBadRequest)
		return
	}
	var category models.Category
	result := initial.DB.Preload("Children").First(&category, id)
	if result.Error != nil {
		http.Error(w, "Категория не найдена", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

func Update(w http.ResponseWriter, r *http.Request) {
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
	var category models.Category
	result := initial.DB.First(&category, id)
	if result.Error != nil {
		http.Error(w, "Категория не найдена", http.StatusNotFound)
		return
	}
	var req CategoryRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			http.Error(w, "Категория не может быть родителем самой себя", http.StatusBadRequest)
			return
		}
		var all []models.Category
		initial.DB.Select("id", "parent_id").Find(&all)
		for _, did := range DescendantIDs(all, category.ID) {
			if did == *req.ParentID {
				http.Error(w, "Нельзя переносить категорию внутрь её потомка", http.StatusBadRequest)
				return
			}
		}
		var parent models.Category
		if err := initial.DB.First(&parent, *req.ParentID).Error; err != nil {
			http.Error(w, "Родительская категория не найдена", http.StatusNotFound)
			return
		}
		category.ParentID = req.ParentID
	}
	if req.NameRu != "" {
		category.NameRu = req.NameRu
	}
	if req.NameEn != "" {
		category.NameEn = req.NameEn
		newSlug := slug.Make(req.NameEn)
		if newSlug != category.Slug {
			if slugTaken(newSlug, category.ParentID, category.ID) {
				http.Error(w, "Категория с таким слагом уже есть у этого родителя", http.StatusConflict)
				return
			}
			category.Slug = newSlug
		}
	}
	if req.DescriptionRu != "" {
		category.DescriptionRu = req.DescriptionRu
	}
	if req.DescriptionEn != "" {
		category.DescriptionEn = req.DescriptionEn
	}
	if req.Order != 0 {
		category.Order = req.Order
	}
	result = initial.DB.Save(&category)
	if result.Error != nil {
		http.Error(w, "Не удалось обновить категорию", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

// Deactivate гасит категорию и всех её потомков одним bulk-обновлением.
func Deactivate(w http.ResponseWriter, r *http.Request) {
	setActive(w, r, false)
}

func Restore(w http.ResponseWriter, r *http.Request) {
	setActive(w, r, true)
}

func setActive(w http.ResponseWriter, r *http.Request, active bool) {
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
	id := parseUint(vars["id"])
	var category models.Category
	result := initial.DB.First(&category, id)
	if result.Error != nil {
		http.Error(w, "Категория не найдена", http.StatusNotFound)
		return
	}
	var all []models.Category
	if err := initial.DB.Select("id", "parent_id").Find(&all).Error; err != nil {
		http.Error(w, "Не удалось получить категории", http.StatusInternalServerError)
		return
	}
	ids := append([]uint{id}, DescendantIDs(all, id)...)
	result = initial.DB.Model(&models.Category{}).Where("id IN ?", ids).Update("is_active", active)
	if result.Error != nil {
		http.Error(w, "Не удалось обновить категории", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"updated":   len(ids),
		"is_active": active,
	})
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
	id := parseUint(vars["id"])
	var all []models.Category
	initial.DB.Select("id", "parent_id").Find(&all)
	ids := append([]uint{id}, DescendantIDs(all, id)...)
	var coursesCount int64
	initial.DB.Model(&models.Course{}).Where("category_id IN ?", ids).Count(&coursesCount)
	if coursesCount > 0 {
		http.Error(w, "В категории есть курсы, сначала перенесите их", http.StatusBadRequest)
		return
	}
	result := initial.DB.Where("id IN ?", ids).Delete(&models.Category{})
	if result.Error != nil {
		http.Error(w, "Не удалось удалить категорию", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SyncCoursesCount пересчитывает счетчик курсов категории.
func SyncCoursesCount(categoryID uint) {
	var count int64
	initial.DB.Model(&models.Course{}).Where("category_id = ?", categoryID).Count(&count)
	initial.DB.Model(&models.Category{}).Where("id = ?", categoryID).Update("courses_count", count)
}

func slugTaken(catSlug string, parentID *uint, selfID uint) bool {
	var count int64
	q := initial.DB.Model(&models.Category{}).Where("slug = ?", catSlug)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	q.Count(&count)
	return count > 0
}

func parseUint(s string) uint {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(u)
}
