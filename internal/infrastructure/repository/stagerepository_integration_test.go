package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/persistence/models"
	"stagecast/internal/shared/logger"
)

var testLogger = logger.NewLogger()

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.StageModel{},
		&models.InviteModel{},
		&models.ChatMessageModel{},
		&models.OAuthStateModel{},
		&models.RefreshTokenModel{},
		&models.ExchangeCodeModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, sid string) *user.User {
	t.Helper()
	repo := NewUserRepository(db, testLogger)
	u, err := user.NewUser(sid, "github", "pid-"+sid, sid+"@example.com", sid, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createTestStage(t *testing.T, db *gorm.DB, sid string, private bool, ownerID uint) *stage.Stage {
	t.Helper()
	repo := NewStageRepository(db, testLogger)
	s, err := stage.NewStage(sid, "stage "+sid, "", private, ownerID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestStageRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStageRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	created := createTestStage(t, db, "s_main", false, owner.ID)
	assert.NotZero(t, created.ID)

	found, err := repo.GetBySID(ctx, "s_main")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "stage s_main", found.Name)
	assert.Equal(t, stage.DefaultColor, found.Color)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "s_main", byID.SID)

	missing, err := repo.GetBySID(ctx, "s_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStageRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStageRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	s := createTestStage(t, db, "s_main", false, owner.ID)

	require.NoError(t, s.Rename("renamed"))
	require.NoError(t, s.SetColor("#ff0000"))
	s.SetPrivate(true)
	require.NoError(t, repo.Update(ctx, s))

	found, err := repo.GetBySID(ctx, "s_main")
	require.NoError(t, err)
	assert.Equal(t, "renamed", found.Name)
	assert.Equal(t, "#ff0000", found.Color)
	assert.True(t, found.Private)
}

func TestStageRepository_ListPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStageRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	other := createTestUser(t, db, "u_other")
	createTestStage(t, db, "s_pub1", false, owner.ID)
	createTestStage(t, db, "s_pub2", false, other.ID)
	createTestStage(t, db, "s_priv", true, owner.ID)

	all, err := repo.ListPublic(ctx, stage.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byOwner, err := repo.ListPublicByOwner(ctx, owner.ID, stage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, "s_pub1", byOwner[0].SID)
}

func TestStageRepository_ListAccessible(t *testing.T) {
	db := setupTestDB(t)
	stages := NewStageRepository(db, testLogger)
	invites := NewInviteRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	guest := createTestUser(t, db, "u_guest")
	own := createTestStage(t, db, "s_own", true, guest.ID)
	invited := createTestStage(t, db, "s_invited", true, owner.ID)
	createTestStage(t, db, "s_closed", true, owner.ID)

	inv, err := stage.NewInvite("i_1", invited.ID, guest.ID)
	require.NoError(t, err)
	require.NoError(t, invites.Create(ctx, inv))

	accessible, err := stages.ListAccessible(ctx, guest.ID, stage.ListFilter{Sort: "sid", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, accessible, 2)
	assert.Equal(t, "s_invited", accessible[0].SID)
	assert.Equal(t, "s_own", accessible[1].SID)

	narrowed, err := stages.ListAccessibleByOwner(ctx, guest.ID, owner.ID, stage.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, narrowed, 2)

	// Narrowing to the guest's own SID keeps only their stages.
	selfOnly, err := stages.ListAccessibleByOwner(ctx, guest.ID, guest.ID, stage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, selfOnly, 1)
	assert.Equal(t, own.SID, selfOnly[0].SID)
}

func TestStageRepository_OrderByWhitelist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStageRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	createTestStage(t, db, "s_a", false, owner.ID)
	createTestStage(t, db, "s_b", false, owner.ID)

	// A non-whitelisted sort column falls back to the default ordering
	// instead of reaching the SQL.
	result, err := repo.ListPublic(ctx, stage.ListFilter{Sort: "owner_id; DROP TABLE stages", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestInviteRepository_ExistsAndDelete(t *testing.T) {
	db := setupTestDB(t)
	invites := NewInviteRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	guest := createTestUser(t, db, "u_guest")
	s := createTestStage(t, db, "s_main", true, owner.ID)

	inv, err := stage.NewInvite("i_1", s.ID, guest.ID)
	require.NoError(t, err)
	require.NoError(t, invites.Create(ctx, inv))

	exists, err := invites.Exists(ctx, s.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	listed, err := invites.ListByUserID(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "i_1", listed[0].SID)

	require.NoError(t, invites.Delete(ctx, inv.ID))
	exists, err = invites.Exists(ctx, s.ID, guest.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChatMessageRepository_History(t *testing.T) {
	db := setupTestDB(t)
	messages := NewChatMessageRepository(db, testLogger)
	ctx := context.Background()

	owner := createTestUser(t, db, "u_owner")
	s := createTestStage(t, db, "s_main", false, owner.ID)

	for _, sid := range []string{"m_1", "m_2", "m_3"} {
		msg, err := stage.NewTextMessage(sid, s.ID, owner.ID, "message "+sid)
		require.NoError(t, err)
		require.NoError(t, messages.Create(ctx, msg))
	}

	fileMsg, err := stage.NewFileMessage("m_file", s.ID, owner.ID, "https://files.example.com/a.png", &stage.FileMeta{
		Name:        "a.png",
		ContentType: "image/png",
		Size:        1024,
	})
	require.NoError(t, err)
	require.NoError(t, messages.Create(ctx, fileMsg))

	history, err := messages.ListByStageID(ctx, s.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "m_1", history[0].SID)

	last := history[3]
	assert.Equal(t, stage.MessageTypeFile, last.Type)
	require.NotNil(t, last.FileMeta)
	assert.Equal(t, "a.png", last.FileMeta.Name)
	assert.Equal(t, int64(1024), last.FileMeta.Size)

	capped, err := messages.ListByStageID(ctx, s.ID, 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}
