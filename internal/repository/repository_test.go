package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fieldtrack-backend/config"
	"fieldtrack-backend/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) model.User {
	t.Helper()
	user := model.User{Email: email, Name: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAttendanceGetOrCreateIsLazyAndUnique(t *testing.T) {
	db := openTestDB(t)
	repo := NewAttendanceRepository(db)
	user := seedUser(t, db, "emp@example.com", model.RoleEmployee)

	first, err := repo.GetOrCreate(user.ID, "2026-09-01", 1)
	require.NoError(t, err)
	assert.Nil(t, first.CheckIn)
	assert.False(t, first.WasInside)

	again, err := repo.GetOrCreate(user.ID, "2026-09-01", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var count int64
	db.Model(&model.Attendance{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAttendanceSaveWithEventsIsAtomic(t *testing.T) {
	db := openTestDB(t)
	repo := NewAttendanceRepository(db)
	user := seedUser(t, db, "emp@example.com", model.RoleEmployee)

	day, err := repo.GetOrCreate(user.ID, "2026-09-01", 1)
	require.NoError(t, err)

	now := time.Now()
	day.CheckIn = &now
	day.WasInside = true
	events := []model.GeofenceEvent{
		{UserID: user.ID, OfficeID: 1, Event: "ENTER", OccurredAt: now},
	}
	require.NoError(t, repo.SaveWithEvents(day, events))

	stored, err := repo.EventsByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "ENTER", stored[0].Event)

	reloaded, err := repo.GetOrCreate(user.ID, "2026-09-01", 1)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CheckIn)
	assert.True(t, reloaded.WasInside)
}

func TestAttendanceGetByMonthFiltersAndOrders(t *testing.T) {
	db := openTestDB(t)
	repo := NewAttendanceRepository(db)
	user := seedUser(t, db, "emp@example.com", model.RoleEmployee)

	for _, date := range []string{"2026-09-15", "2026-09-02", "2026-08-30"} {
		require.NoError(t, db.Create(&model.Attendance{UserID: user.ID, Date: date, OfficeID: 1}).Error)
	}

	days, err := repo.GetByMonth(user.ID, "2026", "09")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-09-02", days[0].Date)
	assert.Equal(t, "2026-09-15", days[1].Date)
}

func TestAttendanceGetByDateForAdminScopes(t *testing.T) {
	db := openTestDB(t)
	repo := NewAttendanceRepository(db)

	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	mine := seedUser(t, db, "mine@example.com", model.RoleEmployee)
	other := seedUser(t, db, "other@example.com", model.RoleEmployee)

	require.NoError(t, db.Create(&model.EmployeeProfile{UserID: mine.ID, AdminID: &admin.ID}).Error)
	require.NoError(t, db.Create(&model.EmployeeProfile{UserID: other.ID}).Error)

	require.NoError(t, db.Create(&model.Attendance{UserID: mine.ID, Date: "2026-09-01", OfficeID: 1}).Error)
	require.NoError(t, db.Create(&model.Attendance{UserID: other.ID, Date: "2026-09-01", OfficeID: 1}).Error)

	days, err := repo.GetByDateForAdmin("2026-09-01", admin.ID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, mine.ID, days[0].UserID)

	all, err := repo.GetByDate("2026-09-01")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLocationHistoryRangeAndOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewLocationRepository(db)
	user := seedUser(t, db, "emp@example.com", model.RoleEmployee)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(&model.LocationLog{
			UserID: user.ID, Latitude: float64(i), Longitude: 0, RecordedAt: &at,
		}))
	}

	history, err := repo.HistoryByUser(user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 2.0, history[0].Latitude) // newest first

	start := base.Add(30 * time.Minute)
	end := base.Add(90 * time.Minute)
	ranged, err := repo.HistoryByUser(user.ID, &start, &end)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 1.0, ranged[0].Latitude)

	latest, err := repo.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, latest.Latitude)

	route, err := repo.Route(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, route[0].Latitude) // oldest first
}

func TestMessageInboxUnreadAndConversation(t *testing.T) {
	db := openTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedUser(t, db, "alice@example.com", model.RoleAdmin)
	bob := seedUser(t, db, "bob@example.com", model.RoleEmployee)

	require.NoError(t, repo.Create(&model.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "hello"}))
	require.NoError(t, repo.Create(&model.Message{SenderID: bob.ID, ReceiverID: alice.ID, Text: "hi"}))
	require.NoError(t, repo.Create(&model.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "status?"}))

	count, err := repo.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	conversation, err := repo.Conversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, conversation, 3)
	assert.Equal(t, "hello", conversation[0].Text)
	assert.Equal(t, "status?", conversation[2].Text)

	inbox, err := repo.Inbox(bob.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 3) // sent and received

	require.NoError(t, repo.MarkConversationRead(alice.ID, bob.ID))
	count, err = repo.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMessageMarkReadSingle(t *testing.T) {
	db := openTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedUser(t, db, "alice@example.com", model.RoleAdmin)
	bob := seedUser(t, db, "bob@example.com", model.RoleEmployee)

	msg := model.Message{SenderID: alice.ID, ReceiverID: bob.ID, Text: "ping"}
	require.NoError(t, repo.Create(&msg))

	loaded, err := repo.FindByID(msg.ID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkRead(loaded))

	reloaded, err := repo.FindByID(msg.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsRead)
}

func TestDeviceRegisterUpsertsByToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewDeviceRepository(db)

	alice := seedUser(t, db, "alice@example.com", model.RoleEmployee)
	bob := seedUser(t, db, "bob@example.com", model.RoleEmployee)

	require.NoError(t, repo.Register(&model.DeviceToken{UserID: alice.ID, Token: "tok-1", DeviceType: "android"}))
	// Same physical device, new signed-in user.
	require.NoError(t, repo.Register(&model.DeviceToken{UserID: bob.ID, Token: "tok-1", DeviceType: "android"}))

	var count int64
	db.Model(&model.DeviceToken{}).Count(&count)
	assert.EqualValues(t, 1, count)

	tokens, err := repo.TokensForUsers([]string{bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-1"}, tokens)

	tokens, err = repo.TokensForUsers([]string{alice.ID})
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestUserDivisionEmployeesScoping(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	division := model.Division{Name: "Field Operations"}
	require.NoError(t, db.Create(&division).Error)

	mine := seedUser(t, db, "mine@example.com", model.RoleEmployee)
	other := seedUser(t, db, "other@example.com", model.RoleEmployee)
	require.NoError(t, db.Create(&model.EmployeeProfile{UserID: mine.ID, AdminID: &admin.ID, DivisionID: &division.ID}).Error)
	require.NoError(t, db.Create(&model.EmployeeProfile{UserID: other.ID, DivisionID: &division.ID}).Error)

	all, err := repo.GetDivisionEmployees(division.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := repo.GetDivisionEmployees(division.ID, admin.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].ID)

	assigned, err := repo.IsAssignedTo(mine.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	assigned, err = repo.IsAssignedTo(other.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, assigned)
}
