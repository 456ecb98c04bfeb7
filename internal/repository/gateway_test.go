package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"antrian/internal/model"
	"antrian/internal/testutil"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	return db, mock
}

func TestGateway_QueryAndExec(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	gw := NewGateway(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Customer{Name: "Budi", Phone: "0812"}).Error)
	require.NoError(t, db.Create(&model.Customer{Name: "Sari", Phone: "0813"}).Error)

	var names []string
	require.NoError(t, gw.Query(ctx, &names, "SELECT nama FROM customer WHERE nomor_telepon LIKE ? ORDER BY id", "081%"))
	assert.Equal(t, []string{"Budi", "Sari"}, names)

	rows, err := gw.Exec(ctx, "UPDATE customer SET alamat = ? WHERE nama = ?", "Bandung", "Sari")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestGateway_BindsValuesAsParameters(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	gw := NewGateway(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Customer{Name: "Budi", Phone: "0812"}).Error)

	var names []string
	require.NoError(t, gw.Query(ctx, &names, "SELECT nama FROM customer WHERE nama = ?", "x' OR '1'='1"))
	assert.Empty(t, names)
}

func TestGateway_PropagatesDriverErrors(t *testing.T) {
	db, mock := newMockDB(t)
	gw := NewGateway(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE antrian SET status = ? WHERE id = ?")).
		WithArgs("selesai", 1).
		WillReturnError(errors.New("deadlock found"))

	_, err := gw.Exec(context.Background(), "UPDATE antrian SET status = ? WHERE id = ?", "selesai", 1)
	assert.EqualError(t, err, "deadlock found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_MySQLStatements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `customer` ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nama", "nomor_telepon", "alamat", "waktu_daftar"}).
			AddRow(1, "Budi", "0812", nil, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `customer` WHERE `customer`.`id` = ?")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Budi", list[0].Name)
	assert.Nil(t, list[0].Address)

	rows, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_EnqueueRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(nomor_antrian), 0) FROM `antrian` WHERE layanan_id = ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `antrian`")).
		WillReturnError(errors.New("foreign key constraint fails"))
	mock.ExpectRollback()

	entry := &model.QueueEntry{CustomerID: 1, ServiceID: 2}
	err := repo.Enqueue(context.Background(), entry)
	assert.Error(t, err)
	assert.Equal(t, 5, entry.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}
