package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpload(userID uuid.UUID, original string, at time.Time) *models.UploadDB {
	return &models.UploadDB{
		UploadID:     uuid.New(),
		UserID:       userID,
		Filename:     uuid.NewString() + ".png",
		OriginalName: original,
		MimeType:     "image/png",
		SizeBytes:    10,
		UploadDate:   at,
	}
}

func TestUploadWriteRepository_Save_Mock(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO uploads").WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewUploadWriteRepository(db).Save(context.Background(), newUpload(uuid.New(), "cat.png", time.Now()))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO uploads").WillReturnError(&pgconn.PgError{Code: "23503"})

		err := NewUploadWriteRepository(db).Save(context.Background(), newUpload(uuid.New(), "cat.png", time.Now()))
		assert.ErrorIs(t, err, models.ErrUnknownUser)
	})
}

func TestUploadReadRepository_ListByUserID_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM uploads (.+) ORDER BY upload_date DESC, seq DESC").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "filename", "original_name"}))

	uploads, err := NewUploadReadRepository(db).ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, uploads)
	assert.Empty(t, uploads)

	mock.ExpectQuery("SELECT (.+) FROM uploads").WillReturnError(errors.New("boom"))
	_, err = NewUploadReadRepository(db).ListByUserID(context.Background(), userID)
	assert.Error(t, err)
}

func TestUploadRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	writer := NewUploadWriteRepository(db)
	reader := NewUploadReadRepository(db)

	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, users.Save(ctx, alice, "alice", "pw", ""))
	require.NoError(t, users.Save(ctx, bob, "bob", "pw", ""))

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := newUpload(alice, "old.png", base.Add(-time.Minute))
	newer := newUpload(alice, "new.png", base)
	require.NoError(t, writer.Save(ctx, older))
	require.NoError(t, writer.Save(ctx, newer))

	t.Run("MostRecentFirst", func(t *testing.T) {
		uploads, err := reader.ListByUserID(ctx, alice)
		require.NoError(t, err)
		require.Len(t, uploads, 2)
		assert.Equal(t, "new.png", uploads[0].OriginalName)
		assert.Equal(t, "old.png", uploads[1].OriginalName)
	})

	t.Run("OtherUserSeesNothing", func(t *testing.T) {
		uploads, err := reader.ListByUserID(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, uploads)
	})

	t.Run("TieBrokenByInsertionOrder", func(t *testing.T) {
		first := newUpload(bob, "first.png", base)
		second := newUpload(bob, "second.png", base)
		require.NoError(t, writer.Save(ctx, first))
		require.NoError(t, writer.Save(ctx, second))

		uploads, err := reader.ListByUserID(ctx, bob)
		require.NoError(t, err)
		require.Len(t, uploads, 2)
		assert.Equal(t, "second.png", uploads[0].OriginalName)
	})

	t.Run("UnknownOwnerRejected", func(t *testing.T) {
		err := writer.Save(ctx, newUpload(uuid.New(), "orphan.png", base))
		assert.ErrorIs(t, err, models.ErrUnknownUser)
	})
}
