package documents

import (
	"context"
	"encoding/json"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"github.com/gorilla/mux"
	"github.com/minio/minio-go/v7"
	"io"
	"net/http"
	"strconv"
)

func UploadDoc(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	err := r.ParseMultipartForm(1024 * 10 << 20) // 10 гб
	if err != nil {
		http.Error(w, "Ошибка при разборе формы", http.StatusBadRequest)
		return
	}
	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Ошибка при получении файла", http.StatusBadRequest)
		return
	}
	defer file.Close()

	vars := mux.Vars(r)
	courseID := vars["courseID"]
	if courseID == "" {
		http.Error(w, "ID курса не указан", http.StatusBadRequest)
		return
	}
	lessonID := vars["lessonID"]
	if lessonID == "" {
		http.Error(w, "ID урока не указан", http.StatusBadRequest)
		return
	}
	var lesson models.Lesson
	if err := initial.DB.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}

	_, err = initial.Client.PutObject(context.Background(),
		"uploadsdoc", handler.Filename,
		file,
		handler.Size, minio.PutObjectOptions{ContentType: handler.Header.Get("Content-Type")})

	if err != nil {
		http.Error(w, "Ошибка загрузки в MinIO", http.StatusInternalServerError)
		return
	}
	doc := models.LessonFile{
		CourseID: parseUint(courseID),
		LessonID: parseUint(lessonID),
		FileName: handler.Filename,
		FileType: handler.Header.Get("Content-Type"),
		FilePath: handler.Filename,
		FileSize: float64(handler.Size),
	}
	result := initial.DB.Create(&doc)
	if result.Error != nil {
		http.Error(w, "ошибка при сохранении информации о файле", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func DownloadDoc(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	docID := vars["id"]
	if docID == "" {
		http.Error(w, "Документ не найден", http.StatusBadRequest)
		return
	}
	var doc models.LessonFile
	result := initial.DB.First(&doc, docID)
	if result.Error != nil {
		http.Error(w, "Документа нет в базе данных", http.StatusNotFound)
		return
	}
	if !canAccess(user, doc.CourseID, doc.LessonID) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	obj, err := initial.Client.GetObject(context.Background(), "uploadsdoc", doc.FileName, minio.GetObjectOptions{})
	if err != nil {
		http.Error(w, "Не удалось скачать файл", http.StatusInternalServerError)
		return
	}
	defer obj.Close()
	w.Header().Set("Content-Disposition", "inline; filename=\""+doc.FileName+"\"")
	w.Header().Set("Content-Type", doc.FileType)
	io.Copy(w, obj)
}

func UploadVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role != string(middleware.Admin) && user.Role != string(middleware.Instructor) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	err := r.ParseMultipartForm(1024 * 10 << 20) // 10 гб
	if err != nil {
		http.Error(w, "Ошибка при разборе формы", http.StatusBadRequest)
		return
	}
	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Ошибка при получении файла", http.StatusBadRequest)
		return
	}
	defer file.Close()

	vars := mux.Vars(r)
	courseID := vars["courseID"]
	lessonID := vars["lessonID"]
	var lesson models.Lesson
	if err := initial.DB.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		http.Error(w, "Урок не найден", http.StatusNotFound)
		return
	}

	_, err = initial.Client.PutObject(context.Background(),
		"uploadsvideo", handler.Filename,
		file,
		handler.Size, minio.PutObjectOptions{ContentType: handler.Header.Get("Content-Type")})

	if err != nil {
		http.Error(w, "Ошибка загрузки в MinIO", http.StatusInternalServerError)
		return
	}
	duration := 0
	if d := r.FormValue("duration"); d != "" {
		duration = int(parseUint(d))
	}
	video := models.LessonVideo{
		CourseID: parseUint(courseID),
		LessonID: parseUint(lessonID),
		FileName: handler.Filename,
		FileType: handler.Header.Get("Content-Type"),
		FilePath: handler.Filename,
		FileSize: float64(handler.Size),
		Duration: duration,
	}
	result := initial.DB.Create(&video)
	if result.Error != nil {
		http.Error(w, "ошибка при сохранении информации о видео", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(video)
}

func StreamVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	videoID := vars["id"]
	var video models.LessonVideo
	result := initial.DB.First(&video, videoID)
	if result.Error != nil {
		http.Error(w, "Видео нет в базе данных", http.StatusNotFound)
		return
	}
	if !canAccess(user, video.CourseID, video.LessonID) {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return
	}
	obj, err := initial.Client.GetObject(context.Background(), "uploadsvideo", video.FileName, minio.GetObjectOptions{})
	if err != nil {
		http.Error(w, "Не удалось получить видео", http.StatusInternalServerError)
		return
	}
	defer obj.Close()
	w.Header().Set("Content-Type", video.FileType)
	io.Copy(w, obj)
}

// canAccess: бесплатный урок доступен всем, остальное только записанным,
// преподавателю курса и админу.
func canAccess(user models.User, courseID, lessonID uint) bool {
	if user.Role == string(middleware.Admin) {
		return true
	}
	var course models.Course
	if err := initial.DB.First(&course, courseID).Error; err != nil {
		return false
	}
	if course.InstructorID == user.ID {
		return true
	}
	var lesson models.Lesson
	if err := initial.DB.First(&lesson, lessonID).Error; err == nil && lesson.IsFree {
		return true
	}
	var enrolled models.Enrollment
	return initial.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrolled).Error == nil
}

func parseUint(s string) uint {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(u)
}
