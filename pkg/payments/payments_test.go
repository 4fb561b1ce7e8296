package payments

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

func TestCreatePaymentDuplicatePending(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	courseRows := sqlmock.NewRows([]string{"id", "is_published", "price", "discount_price"}).
		AddRow(5, true, 1500, 0)
	mock.ExpectQuery(`SELECT \* FROM "courses"`).WillReturnRows(courseRows)
	// еще не записан
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// но незакрытая оплата уже есть
	paymentRows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "status"}).
		AddRow(9, 3, 5, "ожидает")
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(paymentRows)

	req := authedRequest("POST", "/api/courses/5/pay", 3, map[string]string{"courseID": "5"})
	rr := httptest.NewRecorder()
	CreatePayment(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentAlreadyEnrolled(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	courseRows := sqlmock.NewRows([]string{"id", "is_published", "price", "discount_price"}).
		AddRow(5, true, 1500, 0)
	mock.ExpectQuery(`SELECT \* FROM "courses"`).WillReturnRows(courseRows)
	enrollRows := sqlmock.NewRows([]string{"id", "user_id", "course_id"}).
		AddRow(1, 3, 5)
	mock.ExpectQuery(`SELECT \* FROM "enrollments"`).WillReturnRows(enrollRows)

	req := authedRequest("POST", "/api/courses/5/pay", 3, map[string]string{"courseID": "5"})
	rr := httptest.NewRecorder()
	CreatePayment(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
