package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dakabot/internal/model"
	"dakabot/internal/model/dto"
	pkgerrors "dakabot/pkg/errors"
)

type fakeUserListStore struct {
	ensured []model.User
	users   []model.User
}

func (f *fakeUserListStore) EnsureUser(ctx context.Context, user *model.User) error {
	f.ensured = append(f.ensured, *user)
	return nil
}

func (f *fakeUserListStore) List(ctx context.Context) ([]model.User, error) {
	return f.users, nil
}

type fakeAdminStore struct {
	lastStart *time.Time
	lastEnd   *time.Time
	lastUser  string
}

func (f *fakeAdminStore) ListFiltered(ctx context.Context, start, end *time.Time, lineUserID string) ([]model.Attendance, error) {
	f.lastStart = start
	f.lastEnd = end
	f.lastUser = lineUserID
	return nil, nil
}

func TestRegister(t *testing.T) {
	store := &fakeUserListStore{}
	svc := NewUser(store, &fakeAdminStore{})

	err := svc.Register(context.Background(), testUserID, "小明")
	require.NoError(t, err)

	require.Len(t, store.ensured, 1)
	assert.Equal(t, testUserID, store.ensured[0].LineUserID)
	assert.Equal(t, "小明", store.ensured[0].Name)
	assert.True(t, store.ensured[0].IsActive)
	assert.NotZero(t, store.ensured[0].PublicID)
}

func TestRegister_DefaultName(t *testing.T) {
	store := &fakeUserListStore{}
	svc := NewUser(store, &fakeAdminStore{})

	require.NoError(t, svc.Register(context.Background(), testUserID, ""))

	require.Len(t, store.ensured, 1)
	assert.Equal(t, "員工", store.ensured[0].Name)
}

func TestListAttendance_ParsesDates(t *testing.T) {
	admin := &fakeAdminStore{}
	svc := NewUser(&fakeUserListStore{}, admin)

	_, err := svc.ListAttendance(context.Background(), dto.AttendanceQuery{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31T23:59:59Z",
		UserID:    testUserID,
	})
	require.NoError(t, err)

	require.NotNil(t, admin.lastStart)
	assert.Equal(t, 2025, admin.lastStart.Year())
	assert.Equal(t, time.March, admin.lastStart.Month())

	require.NotNil(t, admin.lastEnd)
	assert.Equal(t, 31, admin.lastEnd.Day())

	assert.Equal(t, testUserID, admin.lastUser)
}

func TestListAttendance_EmptyFilters(t *testing.T) {
	admin := &fakeAdminStore{}
	svc := NewUser(&fakeUserListStore{}, admin)

	_, err := svc.ListAttendance(context.Background(), dto.AttendanceQuery{})
	require.NoError(t, err)

	assert.Nil(t, admin.lastStart)
	assert.Nil(t, admin.lastEnd)
	assert.Empty(t, admin.lastUser)
}

func TestListAttendance_InvalidDate(t *testing.T) {
	svc := NewUser(&fakeUserListStore{}, &fakeAdminStore{})

	_, err := svc.ListAttendance(context.Background(), dto.AttendanceQuery{StartDate: "not-a-date"})
	assert.ErrorIs(t, err, pkgerrors.InvalidTimeRange)

	_, err = svc.ListAttendance(context.Background(), dto.AttendanceQuery{EndDate: "31/03/2025"})
	assert.ErrorIs(t, err, pkgerrors.InvalidTimeRange)
}
