package routes

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

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{Conn: mockDB, PreferSimpleProtocol: true})
	gdb, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	initial.DB = gdb
	return mock
}

func withUser(r *http.Request, role string) *http.Request {
	user := models.User{Model: gorm.Model{ID: 3}, Role: role}
	return r.WithContext(context.WithValue(r.Context(), "user", user))
}

// маршруты уроков вложены в раздел, sectionID должен доходить до обработчика
func TestCreateLessonRouteCarriesSectionID(t *testing.T) {
	mock := setupMockDB(t)

	r := mux.NewRouter()
	lessonRouter := r.PathPrefix("/api/courses/{courseID}").Subrouter()
	SetupLessons(lessonRouter)

	sectionRows := sqlmock.NewRows([]string{"id", "course_id", "is_active"}).
		AddRow(2, 5, true)
	mock.ExpectQuery(`SELECT \* FROM "sections"`).WillReturnRows(sectionRows)
	mock.ExpectQuery(`INSERT INTO "lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	req := httptest.NewRequest("POST", "/api/courses/5/sections/2/lessons",
		strings.NewReader(`{"title":"Введение"}`))
	req = withUser(req, "администратор")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"SectionID":2`)
	assert.Contains(t, rr.Body.String(), `"CourseID":5`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLessonsRouteFiltersBySection(t *testing.T) {
	mock := setupMockDB(t)

	r := mux.NewRouter()
	lessonRouter := r.PathPrefix("/api/courses/{courseID}").Subrouter()
	SetupLessons(lessonRouter)

	mock.MatchExpectationsInOrder(false)
	lessonRows := sqlmock.NewRows([]string{"id", "section_id", "course_id", "title", "is_active"}).
		AddRow(1, 2, 5, "Введение", true)
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).WillReturnRows(lessonRows)
	mock.ExpectQuery(`SELECT \* FROM "lesson_files"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "lesson_videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "quizzes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("GET", "/api/courses/5/sections/2/lessons", nil)
	req = withUser(req, "студент")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Введение")
	assert.NoError(t, mock.ExpectationsWereMet())
}
