package enrollment

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	req := httptest.NewRequest(method, target, nil)
	user := models.User{Model: gorm.Model{ID: userID}, Role: "студент"}
	req = req.WithContext(context.WithValue(req.Context(), "user", user))
	return mux.SetURLVars(req, vars)
}

func TestEnrollInCourseDuplicate(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	courseRows := sqlmock.NewRows([]string{"id", "is_published", "price", "discount_price"}).
		AddRow(5, true, 0, 0)
	mock.ExpectQuery(`SELECT \* FROM "courses"`).WillReturnRows(courseRows)
	enrollRows := sqlmock.NewRows([]string{"id", "user_id", "course_id"}).
		AddRow(1, 3, 5)
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).WillReturnRows(enrollRows)

	req := authedRequest("POST", "/api/courses/5/enroll", 3, map[string]string{"courseID": "5"})
	rr := httptest.NewRecorder()
	EnrollInCourse(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// запись ищется по id из пути, а не по course_id
func TestGetEnrollmentLooksUpByID(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	enrollRows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "progress"}).
		AddRow(5, 3, 7, 50)
	mock.ExpectQuery(`SELECT \* FROM "enrollments" WHERE user_id = .+ AND "enrollments"\."id" = `).
		WillReturnRows(enrollRows)
	mock.ExpectQuery(`SELECT \* FROM "completed_lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := authedRequest("GET", "/api/enrollments/5", 3, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	GetEnrollment(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEnrollmentForeignRecord(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	// запись существует, но принадлежит другому пользователю
	mock.ExpectQuery(`SELECT \* FROM "enrollments" WHERE user_id = .+ AND "enrollments"\."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := authedRequest("GET", "/api/enrollments/5", 3, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	GetEnrollment(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// после скрытия урока прогресс пересчитывается сразу, а не при следующем
// завершении урока
func TestSyncCourseProgressAfterLessonDeactivation(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	enrollRows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "progress"}).
		AddRow(1, 3, 7, 100)
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).WillReturnRows(enrollRows)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "completed_lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "enrollments"`).WillReturnResult(sqlmock.NewResult(0, 1))

	SyncCourseProgress(7)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncCourseProgressUnchangedSkipsUpdate(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	enrollRows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "progress"}).
		AddRow(1, 3, 7, 50)
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).WillReturnRows(enrollRows)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "completed_lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	SyncCourseProgress(7)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollInCoursePaidRejected(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	courseRows := sqlmock.NewRows([]string{"id", "is_published", "price", "discount_price"}).
		AddRow(5, true, 990, 0)
	mock.ExpectQuery(`SELECT \* FROM "courses"`).WillReturnRows(courseRows)

	req := authedRequest("POST", "/api/courses/5/enroll", 3, map[string]string{"courseID": "5"})
	rr := httptest.NewRecorder()
	EnrollInCourse(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
