package quizzes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{Conn: mockDB, PreferSimpleProtocol: true})
	gdb, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	old := initial.DB
	initial.DB = gdb
	return mock, func() {
		initial.DB = old
		mockDB.Close()
	}
}

func authedRequest(method, target string, userID uint, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(`{"answers":[]}`))
	user := models.User{Model: gorm.Model{ID: userID}, Role: "студент"}
	req = req.WithContext(context.WithValue(req.Context(), "user", user))
	return mux.SetURLVars(req, vars)
}

// тест чужого урока недоступен по подмененному пути
func TestSubmitAttemptWrongLesson(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	quizRows := sqlmock.NewRows([]string{"id", "lesson_id", "total_attempts", "total_score"}).
		AddRow(9, 4, 1, 10)
	mock.ExpectQuery(`SELECT \* FROM "quizzes"`).WillReturnRows(quizRows)

	req := authedRequest("POST", "/api/courses/2/lessons/5/quiz/9/attempts", 3,
		map[string]string{"courseID": "2", "lessonID": "5", "quizID": "9"})
	rr := httptest.NewRecorder()
	SubmitAttempt(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAttemptRequiresEnrollment(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	quizRows := sqlmock.NewRows([]string{"id", "lesson_id", "total_attempts", "total_score"}).
		AddRow(9, 4, 1, 10)
	mock.ExpectQuery(`SELECT \* FROM "quizzes"`).WillReturnRows(quizRows)
	lessonRows := sqlmock.NewRows([]string{"id", "course_id", "is_active"}).
		AddRow(4, 2, true)
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).WillReturnRows(lessonRows)
	// пользователь не записан на курс
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := authedRequest("POST", "/api/courses/2/lessons/4/quiz/9/attempts", 3,
		map[string]string{"courseID": "2", "lessonID": "4", "quizID": "9"})
	rr := httptest.NewRecorder()
	SubmitAttempt(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAttemptQuizFromOtherCourse(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	quizRows := sqlmock.NewRows([]string{"id", "lesson_id", "total_attempts", "total_score"}).
		AddRow(9, 4, 1, 10)
	mock.ExpectQuery(`SELECT \* FROM "quizzes"`).WillReturnRows(quizRows)
	// урок 4 не принадлежит курсу 8
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := authedRequest("POST", "/api/courses/8/lessons/4/quiz/9/attempts", 3,
		map[string]string{"courseID": "8", "lessonID": "4", "quizID": "9"})
	rr := httptest.NewRecorder()
	SubmitAttempt(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
