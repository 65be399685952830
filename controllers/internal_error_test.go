package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"villa-backend/utils"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestStorageFailureIsOpaque(t *testing.T) {
	db, mock := newMockDB(t)
	a := newRouter(t, db)

	mock.ExpectQuery("SELECT (.+) FROM `villas`").
		WillReturnError(errors.New("dial tcp 10.0.0.7:3306: connection refused"))

	w, env := a.do(t, http.MethodGet, "/api/v1/VillaAPI/1", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	assert.False(t, env.IsSuccessful)
	assert.Equal(t, []string{utils.InternalErrorMessage}, env.ErrorMessages)
	assert.NotContains(t, w.Body.String(), "10.0.0.7")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStorageFailureIsOpaque(t *testing.T) {
	db, mock := newMockDB(t)
	a := newRouter(t, db)

	mock.ExpectQuery("SELECT (.+) FROM `villa_numbers`").
		WillReturnError(errors.New("Error 1146: Table 'villa_db.villa_numbers' doesn't exist"))

	w, env := a.do(t, http.MethodGet, "/api/v1/VillaNumberAPI", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []string{utils.InternalErrorMessage}, env.ErrorMessages)
	assert.NotContains(t, w.Body.String(), "villa_db")
	assert.NoError(t, mock.ExpectationsWereMet())
}
