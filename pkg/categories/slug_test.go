package categories

import (
	"testing"

	"eduplace-go/pkg/initial"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gosimple/slug"
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

func TestSlugDerivation(t *testing.T) {
	assert.Equal(t, "web-development", slug.Make("Web Development"))
	assert.Equal(t, "go-backend", slug.Make("  Go   Backend  "))
}

func TestSlugTakenScopedToParent(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	count := func(n int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}

	// занят в этом же родителе
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories"`).WillReturnRows(count(1))
	assert.True(t, slugTaken("web-development", uintPtr(1), 0))

	// в другом родителе тот же slug свободен
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories"`).WillReturnRows(count(0))
	assert.False(t, slugTaken("web-development", uintPtr(2), 0))

	// корневой уровень проверяется по parent_id IS NULL
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories"`).WillReturnRows(count(0))
	assert.False(t, slugTaken("web-development", nil, 0))

	assert.NoError(t, mock.ExpectationsWereMet())
}
