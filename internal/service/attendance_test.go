package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dakabot/internal/model"
	"dakabot/internal/model/dto"
	"dakabot/pkg/civil"
	"dakabot/pkg/geo"
)

// ========== 测试替身 ==========

type fakePunchStore struct {
	records     []model.Attendance
	listErr     error
	insertErr   error
	insertedAt  time.Time // 非零时模拟数据库赋值 created_at
	insertCalls int
}

func (f *fakePunchStore) ListForDay(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []model.Attendance
	for _, r := range f.records {
		if r.LineUserID == lineUserID && b.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePunchStore) Insert(ctx context.Context, record *model.Attendance) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	f.insertCalls++
	if !f.insertedAt.IsZero() {
		record.CreatedAt = f.insertedAt
	}
	f.records = append(f.records, *record)
	return nil
}

type fakeUserStore struct {
	ensureErr   error
	ensureCalls int
}

func (f *fakeUserStore) EnsureUser(ctx context.Context, user *model.User) error {
	f.ensureCalls++
	return f.ensureErr
}

type fakeLocker struct {
	busy       bool
	tryErr     error
	lockCalls  int
	unlockKeys []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	f.lockCalls++
	if f.tryErr != nil {
		return false, f.tryErr
	}
	return !f.busy, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key string) error {
	f.unlockKeys = append(f.unlockKeys, key)
	return nil
}

// ========== 辅助 ==========

const (
	testSiteLat = 25.0
	testSiteLng = 121.5
	testUserID  = "U1234567890abcdef"
)

func newTestResolver(t *testing.T) *geo.Resolver {
	t.Helper()

	r, err := geo.NewResolver([]geo.Site{
		{Name: "總店", Lat: testSiteLat, Lng: testSiteLng, RadiusMeters: 200},
	})
	require.NoError(t, err)
	return r
}

// 台湾时间 2025-03-11 09:00
var testNow = time.Date(2025, 3, 11, 9, 0, 0, 0, civil.Zone)

func punchAt(punchType model.PunchType, at time.Time) model.Attendance {
	return model.Attendance{
		LineUserID: testUserID,
		Type:       punchType,
		SiteName:   "總店",
		CreatedAt:  at,
	}
}

// ========== 用例 ==========

func TestSubmitPunch_FirstPunchIsClockIn(t *testing.T) {
	punches := &fakePunchStore{}
	users := &fakeUserStore{}
	svc := NewAttendance(newTestResolver(t), punches, users, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchAccepted, outcome.Kind)
	assert.Equal(t, string(model.PunchTypeClockIn), outcome.Type)
	assert.Equal(t, "總店", outcome.SiteName)
	assert.Contains(t, outcome.Message, "✅ 上班打卡成功")
	assert.Contains(t, outcome.Message, "總店")
	assert.Equal(t, 1, punches.insertCalls)
	assert.Equal(t, 1, users.ensureCalls)
}

func TestSubmitPunch_SecondPunchIsClockOut(t *testing.T) {
	punches := &fakePunchStore{
		records: []model.Attendance{punchAt(model.PunchTypeClockIn, testNow.Add(-2*time.Hour))},
	}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchAccepted, outcome.Kind)
	assert.Equal(t, string(model.PunchTypeClockOut), outcome.Type)
	assert.Contains(t, outcome.Message, "✅ 下班打卡成功")
}

func TestSubmitPunch_DuplicateClockOut(t *testing.T) {
	clockOutAt := testNow.Add(-time.Hour)
	punches := &fakePunchStore{
		records: []model.Attendance{
			punchAt(model.PunchTypeClockIn, testNow.Add(-8*time.Hour)),
			punchAt(model.PunchTypeClockOut, clockOutAt),
		},
	}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchDuplicate, outcome.Kind)
	assert.Contains(t, outcome.Message, "⚠️ 您今天已經下班打卡了")
	assert.Contains(t, outcome.Message, civil.FormatTime(clockOutAt, false))
	assert.Zero(t, punches.insertCalls)
}

func TestSubmitPunch_YesterdayRecordsDoNotCount(t *testing.T) {
	punches := &fakePunchStore{
		records: []model.Attendance{
			punchAt(model.PunchTypeClockIn, testNow.AddDate(0, 0, -1)),
			punchAt(model.PunchTypeClockOut, testNow.AddDate(0, 0, -1).Add(8*time.Hour)),
		},
	}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchAccepted, outcome.Kind)
	assert.Equal(t, string(model.PunchTypeClockIn), outcome.Type)
}

func TestSubmitPunch_OutOfRange(t *testing.T) {
	punches := &fakePunchStore{}
	locker := &fakeLocker{}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, locker)

	// 远离配置地点的坐标
	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", 22.6, 120.3, testNow)

	assert.Equal(t, dto.PunchOutOfRange, outcome.Kind)
	assert.Equal(t, "總店", outcome.SiteName)
	assert.Contains(t, outcome.Message, "❌ 打卡失敗")
	assert.Contains(t, outcome.Message, "最近的地點: 總店")
	assert.Zero(t, punches.insertCalls)
	// 范围判定在加锁之前，不应触碰锁
	assert.Zero(t, locker.lockCalls)
}

func TestSubmitPunch_LockBusy(t *testing.T) {
	punches := &fakePunchStore{}
	locker := &fakeLocker{busy: true}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, locker)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchSystemError, outcome.Kind)
	assert.Contains(t, outcome.Message, "⏳ 打卡處理中")
	assert.Zero(t, punches.insertCalls)
}

func TestSubmitPunch_LockErrorDegradesToLockless(t *testing.T) {
	punches := &fakePunchStore{}
	locker := &fakeLocker{tryErr: errors.New("redis down")}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, locker)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchAccepted, outcome.Kind)
	// 没拿到锁就不应释放锁
	assert.Empty(t, locker.unlockKeys)
}

func TestSubmitPunch_ReleasesLockAfterPunch(t *testing.T) {
	locker := &fakeLocker{}
	svc := NewAttendance(newTestResolver(t), &fakePunchStore{}, &fakeUserStore{}, locker)

	svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	require.Len(t, locker.unlockKeys, 1)
	assert.Equal(t, "punch:"+testUserID, locker.unlockKeys[0])
}

func TestSubmitPunch_ListFailure(t *testing.T) {
	punches := &fakePunchStore{listErr: errors.New("db down")}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchSystemError, outcome.Kind)
	assert.Contains(t, outcome.Message, "❌ 系統錯誤")
}

func TestSubmitPunch_InsertFailure(t *testing.T) {
	punches := &fakePunchStore{insertErr: errors.New("db down")}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchSystemError, outcome.Kind)
}

func TestSubmitPunch_UserUpsertFailureDoesNotBlock(t *testing.T) {
	punches := &fakePunchStore{}
	users := &fakeUserStore{ensureErr: errors.New("db down")}
	svc := NewAttendance(newTestResolver(t), punches, users, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, dto.PunchAccepted, outcome.Kind)
	assert.Equal(t, 1, punches.insertCalls)
}

func TestSubmitPunch_UsesStoreTimestamp(t *testing.T) {
	storedAt := testNow.Add(3 * time.Second)
	punches := &fakePunchStore{insertedAt: storedAt}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "小明", testSiteLat, testSiteLng, testNow)

	assert.Equal(t, storedAt, outcome.PunchedAt)
	assert.Contains(t, outcome.Message, civil.FormatTime(storedAt, true))
}

func TestSubmitPunch_DefaultDisplayName(t *testing.T) {
	punches := &fakePunchStore{}
	svc := NewAttendance(newTestResolver(t), punches, &fakeUserStore{}, nil)

	outcome := svc.SubmitPunch(context.Background(), testUserID, "", testSiteLat, testSiteLng, testNow)

	require.Equal(t, dto.PunchAccepted, outcome.Kind)
	require.Len(t, punches.records, 1)
	assert.Equal(t, "員工", punches.records[0].UserName)
}
