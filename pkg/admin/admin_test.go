package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduplace-go/pkg/initial"
	"github.com/DATA-DOG/go-sqlmock"
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

func TestCreateContactMessage(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	mock.ExpectQuery(`INSERT INTO "contact_messages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	body := `{"name":"Иван","email":"ivan@example.com","text":"Здравствуйте"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	rr := httptest.NewRecorder()
	CreateContactMessage(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContactMessageMissingFields(t *testing.T) {
	_, teardown := setupMockDB(t)
	defer teardown()

	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(`{"name":"Иван"}`))
	rr := httptest.NewRecorder()
	CreateContactMessage(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
