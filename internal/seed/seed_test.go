package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"antrian/internal/logger"
	"antrian/internal/model"
	"antrian/internal/repository"
	"antrian/internal/testutil"
)

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	users := repository.NewUserRepository(db)
	details := repository.NewUserDetailRepository(db)
	services := repository.NewServiceRepository(db)
	s := New(users, details, services, logger.Discard())
	ctx := context.Background()

	res, err := s.Run(ctx, DefaultServices, DefaultAccounts)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersCreated: 3, Services: 2}, res)

	res, err = s.Run(ctx, DefaultServices, DefaultAccounts)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersExisting: 3, Services: 2}, res)

	var userCount, serviceCount, detailCount int64
	db.Model(&model.User{}).Count(&userCount)
	db.Model(&model.Service{}).Count(&serviceCount)
	db.Model(&model.UserDetail{}).Count(&detailCount)
	assert.EqualValues(t, 3, userCount)
	assert.EqualValues(t, 2, serviceCount)
	assert.EqualValues(t, 3, detailCount)

	jimmy, err := users.FindByUsername(ctx, "jimmy")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, jimmy.Role)
	assert.NotEqual(t, "jimmy123", jimmy.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(jimmy.PasswordHash), []byte("jimmy123")))

	detail, err := details.FindByUserID(ctx, jimmy.ID)
	require.NoError(t, err)
	gigi, err := services.Ensure(ctx, "Poli Gigi")
	require.NoError(t, err)
	require.NotNil(t, detail.ServiceID)
	assert.Equal(t, gigi.ID, *detail.ServiceID)

	didi, err := users.FindByUsername(ctx, "didi")
	require.NoError(t, err)
	adminDetail, err := details.FindByUserID(ctx, didi.ID)
	require.NoError(t, err)
	assert.Nil(t, adminDetail.ServiceID)
	assert.Equal(t, "Administrator", adminDetail.FullName)
}

func TestSeeder_UnknownService(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	s := New(repository.NewUserRepository(db), repository.NewUserDetailRepository(db), repository.NewServiceRepository(db), logger.Discard())

	_, err := s.Run(context.Background(), nil, []Account{{Username: "x", Password: "x12345", Role: model.RoleDoctor, FullName: "X", ServiceName: "Poli Mata"}})
	assert.ErrorContains(t, err, "unknown layanan")
}
