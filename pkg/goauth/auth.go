package goauth

import (
	"context"
	"encoding/json"
	"eduplace-go/pkg/email"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/middleware"
	"eduplace-go/pkg/models"
	"fmt"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type RegRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type CodeReg struct {
	Code string `json:"code"`
}

func ConstructorReg() *RegRequest {
	return &RegRequest{}
}
func ConstructorCode() *CodeReg {
	return &CodeReg{}
}

func (c *RegRequest) SendEmail(w http.ResponseWriter, r *http.Request) {
	err := json.NewDecoder(r.Body).Decode(c)
	if err != nil {
		http.Error(w, "Не удалось декодировать форму", http.StatusBadRequest)
		return
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_URL"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if strings.Contains(c.Password, "|") || strings.Contains(c.Email, "|") {
		http.Error(w, "Пароль содержит запрещенные символы", http.StatusBadRequest)
		return
	}
	gCode := generateC()
	val := c.Password + "|" + c.Email
	err = rdb.Set(context.Background(), gCode, val, time.Minute*10).Err()
	if err != nil {
		http.Error(w, "Не удалось установить ключи REDIS", http.StatusBadRequest)
		return
	}
	emailD := email.EmailData{
		Code: gCode,
	}
	htmlS, err := emailD.GenerateEmailHTML("EmailCode.html")
	if err != nil {
		http.Error(w, "Не удалось перевести в строку", http.StatusBadRequest)
		return
	}
	to := []string{c.Email}
	topic := "Код подтверждения от Eduplace"
	err = email.SendEmail(to, topic, htmlS)
	if err != nil {
		http.Error(w, "Не удалось отправить письмо", http.StatusBadRequest)
		return
	}
}

func (cr *CodeReg) SignUp(w http.ResponseWriter, r *http.Request) {
	err := json.NewDecoder(r.Body).Decode(cr)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_URL"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	val, err := rdb.Get(context.Background(), cr.Code).Result()
	if err != nil {
		http.Error(w, "Неправильный код", http.StatusBadRequest)
		return
	}
	stringPE := strings.Split(val, "|")
	// хэшируем пароль
	hash, err := bcrypt.GenerateFromPassword([]byte(stringPE[0]), 10)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusBadRequest)
		return
	}
	user := models.User{
		Email:    stringPE[1],
		Password: string(hash),
	}
	result := initial.DB.Create(&user)
	if result.Error != nil {
		http.Error(w, "Не удалось создать пользователя", http.StatusConflict)
		return
	}

	tokenstring, err := signToken(user.ID)
	if err != nil {
		http.Error(w, "не удалось создать токен", http.StatusInternalServerError)
		return
	}
	setTokenCookie(w, tokenstring)
	resp := struct {
		Data models.User `json:"data"`
	}{
		Data: user,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func Login(w http.ResponseWriter, r *http.Request) {
	var userR models.User
	err := json.NewDecoder(r.Body).Decode(&userR)
	if err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}
	var user models.User
	initial.DB.First(&user, "email = ?", userR.Email)
	if user.ID == 0 {
		http.Error(w, "неверная почта или пароль", http.StatusNotFound)
		return
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userR.Password))
	if err != nil {
		http.Error(w, "неверный пароль", http.StatusUnauthorized)
		return
	}
	tokenstring, err := signToken(user.ID)
	if err != nil {
		http.Error(w, "не удалось создать токен", http.StatusInternalServerError)
		return
	}
	setTokenCookie(w, tokenstring)
	response := struct {
		Data models.User `json:"data"`
	}{
		Data: user,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   false,
		HttpOnly: true,
	})
}

func Me(w http.ResponseWriter, r *http.Request) {
	userR, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	var user models.User
	initial.DB.Preload("Enrollments").Preload("Wishlist").First(&user, "id = ?", userR.ID)
	if user.ID == 0 {
		http.Error(w, "Пользователь не найден", http.StatusNotFound)
		return
	}
	response := struct {
		ID          uint                `json:"id"`
		Name        string              `json:"name"`
		Secondname  string              `json:"secondname"`
		Email       string              `json:"email"`
		Role        string              `json:"role"`
		Enrollments []models.Enrollment `json:"enrollments"`
		CreatedAt   time.Time           `json:"created_at"`
	}{
		ID:          user.ID,
		Name:        user.Name,
		Secondname:  user.Secondname,
		Email:       user.Email,
		Role:        user.Role,
		Enrollments: user.Enrollments,
		CreatedAt:   user.CreatedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func UpdateMe(w http.ResponseWriter, r *http.Request) {
	userR, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}

	type UserUpdateRequest struct {
		Name       string `json:"name"`
		Secondname string `json:"secondname"`
	}

	var update UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Не удалось задекодировать", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := initial.DB.First(&user, "id = ?", userR.ID).Error; err != nil {
		http.Error(w, "Не удалось найти пользователя", http.StatusNotFound)
		return
	}

	changed := false
	if update.Name != "" && update.Name != user.Name {
		user.Name = update.Name
		changed = true
	}
	if update.Secondname != "" && update.Secondname != user.Secondname {
		user.Secondname = update.Secondname
		changed = true
	}

	if changed {
		if err := initial.DB.Save(&user).Error; err != nil {
			http.Error(w, "Ошибка при сохранении", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

type ReqToInstructor struct {
	Name       string `json:"name"`
	Secondname string `json:"secondname"`
	Bio        string `json:"bio"`
}

func Constructor() *ReqToInstructor {
	return &ReqToInstructor{}
}

// SendVerInstructor кладет заявку в redis и шлет админу письмо со ссылкой
// подтверждения.
func (v *ReqToInstructor) SendVerInstructor(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, "Не авторизован", http.StatusUnauthorized)
		return
	}
	if user.Role == string(middleware.Instructor) {
		http.Error(w, "Вы уже преподаватель", http.StatusBadRequest)
		return
	}
	err := json.NewDecoder(r.Body).Decode(&v)
	if err != nil {
		http.Error(w, "Не удалось декодировать", http.StatusBadRequest)
		return
	}
	if strings.Contains(v.Name, "|") || strings.Contains(v.Bio, "|") {
		http.Error(w, "Форма содержит запрещенные символы", http.StatusBadRequest)
		return
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_URL"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	val := user.Email + "|" + v.Name + "|" + v.Secondname + "|" + v.Bio
	strID := strconv.Itoa(int(user.ID))
	err = rdb.Set(context.Background(), "instructor:"+strID, val, 7*24*time.Hour).Err()
	if err != nil {
		http.Error(w, "Не удалось установить ключи REDIS", http.StatusBadRequest)
		return
	}
	emailD := email.EmailData{
		NameInstructor:       v.Name,
		SecondNameInstructor: v.Secondname,
		Bio:                  v.Bio,
		VerifyLink:           os.Getenv("PUBLIC_URL") + "/api/verifyinstructor/" + strID,
	}
	htmlS, err := emailD.GenerateEmailHTML("VerifyInstructor.html")
	if err != nil {
		http.Error(w, "Не удалось перевести html страницу в строку", http.StatusBadRequest)
		return
	}
	to := []string{os.Getenv("ADMIN_EMAIL")}
	subject := "Заявка преподавателя на Eduplace"
	err = email.SendEmail(to, subject, htmlS)
	if err != nil {
		http.Error(w, "Не удалось отправить на почту админа", http.StatusBadRequest)
		return
	}
}

// VerifyInstructor подтверждает заявку: роль меняется, создается профиль.
func VerifyInstructor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]
	var user models.User
	if err := initial.DB.First(&user, userID).Error; err != nil {
		http.Error(w, "Пользователь не найден", http.StatusNotFound)
		return
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_URL"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	val, err := rdb.Get(context.Background(), "instructor:"+userID).Result()
	if err != nil {
		http.Error(w, "Не удалось получить данные REDIS", http.StatusBadRequest)
		return
	}
	data := strings.Split(val, "|")
	user.Role = "преподаватель"
	user.Email = data[0]
	user.Name = data[1]
	user.Secondname = data[2]
	if err := initial.DB.Save(&user).Error; err != nil {
		http.Error(w, "Не удалось обновить пользователя", http.StatusInternalServerError)
		return
	}
	profile := models.InstructorProfile{
		UserID:   user.ID,
		Bio:      data[3],
		Approved: true,
	}
	if err := initial.DB.Create(&profile).Error; err != nil {
		http.Error(w, "Не удалось создать профиль преподавателя", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func signToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SECRET")))
}

func setTokenCookie(w http.ResponseWriter, tokenstring string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenstring,
		Path:     "/",
		Expires:  time.Now().Add(time.Hour * 72),
		Secure:   false,
		HttpOnly: true,
	})
}

func generateC() string {
	rand.Seed(time.Now().UnixNano())
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
