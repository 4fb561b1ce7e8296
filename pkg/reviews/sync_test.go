package reviews

import (
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

func TestSyncCourseRating(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	rows := sqlmock.NewRows([]string{"id", "course_id", "rating"}).
		AddRow(1, 7, 5).
		AddRow(2, 7, 4)
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "courses"`).WillReturnResult(sqlmock.NewResult(0, 1))

	SyncCourseRating(7)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncCourseRatingNoReviews(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	rows := sqlmock.NewRows([]string{"id", "course_id", "rating"})
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "courses"`).WillReturnResult(sqlmock.NewResult(0, 1))

	SyncCourseRating(7)

	assert.NoError(t, mock.ExpectationsWereMet())
}
