package mariadb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	guuid "github.com/google/uuid"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

func testVideo() *model.Video {
	return &model.Video{
		ID:             uuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")),
		OrganizationID: "org-1",
		ShopID:         "org-1-shop-1",
		ObjectKey:      "org-1/org-1-shop-1/vid/clip.mp4",
		Title:          "clip",
		Description:    "a clip",
		FileSize:       2048,
		DurationSecs:   42,
		ViewCount:      7,
		Status:         model.VideoStatusActive,
		UploaderSub:    "user-1",
		UploadedAt:     time.Now().UTC().Truncate(time.Second),
		UpdatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func idValue(t *testing.T, id uuid.UUID) driver.Value {
	t.Helper()
	v, err := id.Value()
	if err != nil {
		t.Fatalf("uuid value: %v", err)
	}
	return v
}

func videoRows(t *testing.T, videos ...*model.Video) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "shop_id", "object_key", "thumbnail_key",
		"title", "description", "file_size", "duration_seconds", "view_count",
		"status", "uploader_sub", "uploaded_at", "updated_at",
	})
	for _, v := range videos {
		rows.AddRow(
			idValue(t, v.ID), v.OrganizationID, v.ShopID, v.ObjectKey, v.ThumbnailKey,
			v.Title, v.Description, v.FileSize, v.DurationSecs, v.ViewCount,
			string(v.Status), v.UploaderSub, v.UploadedAt, v.UpdatedAt,
		)
	}
	return rows
}

func TestVideoRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO videos`)).
		WithArgs(
			v.ID, v.OrganizationID, v.ShopID,
			v.ObjectKey, v.ThumbnailKey,
			v.Title, v.Description, v.FileSize, v.DurationSecs,
			v.Status, v.UploaderSub, v.UploadedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shops SET total_videos = total_videos + 1`)).
		WithArgs(v.FileSize, v.ShopID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE organizations SET total_videos = total_videos + 1`)).
		WithArgs(v.FileSize, v.OrganizationID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), v); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVideoRepository_Create_InsertError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO videos`)).
		WillReturnError(errors.New("insert fail"))
	mock.ExpectRollback()

	if err := repo.Create(context.Background(), v); err == nil {
		t.Error("expected an error from Create()")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVideoRepository_DeleteActive_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT organization_id, shop_id, file_size FROM videos WHERE id = ? AND status = 'active'`)).
		WithArgs(v.ID).
		WillReturnRows(sqlmock.NewRows([]string{"organization_id", "shop_id", "file_size"}).
			AddRow(v.OrganizationID, v.ShopID, v.FileSize))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM videos WHERE id = ? AND status = 'active'`)).
		WithArgs(v.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shops SET total_videos = total_videos - 1`)).
		WithArgs(v.FileSize, v.ShopID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE organizations SET total_videos = total_videos - 1`)).
		WithArgs(v.FileSize, v.OrganizationID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteActive(context.Background(), v.ID); err != nil {
		t.Errorf("DeleteActive() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVideoRepository_DeleteActive_AlreadyGone(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT organization_id, shop_id, file_size FROM videos`)).
		WithArgs(v.ID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if err := repo.DeleteActive(context.Background(), v.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestVideoRepository_DeleteActive_RacedDelete(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT organization_id, shop_id, file_size FROM videos`)).
		WithArgs(v.ID).
		WillReturnRows(sqlmock.NewRows([]string{"organization_id", "shop_id", "file_size"}).
			AddRow(v.OrganizationID, v.ShopID, v.FileSize))
	// the row vanished between lookup and delete
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM videos`)).
		WithArgs(v.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.DeleteActive(context.Background(), v.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for a raced delete, got %v", err)
	}
}

func TestVideoRepository_ListByShop_Pagination(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)

	v1 := testVideo()
	v2 := testVideo()
	v2.ID = uuid.NewUUID()
	v3 := testVideo()
	v3.ID = uuid.NewUUID()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM videos WHERE status = 'active' AND shop_id = ?`)).
		WithArgs("org-1-shop-1", 3).
		WillReturnRows(videoRows(t, v1, v2, v3))

	page, err := repo.ListByShop(context.Background(), "org-1-shop-1", 2, "")
	if err != nil {
		t.Fatalf("ListByShop() returned unexpected error: %v", err)
	}
	if len(page.Videos) != 2 {
		t.Errorf("expected 2 videos on the page, got %d", len(page.Videos))
	}
	if page.NextPageToken == "" {
		t.Error("expected a next page token when more rows exist")
	}

	ts, lastID, err := decodeKeysetToken(page.NextPageToken)
	if err != nil {
		t.Fatalf("token does not round-trip: %v", err)
	}
	if lastID != v2.ID || !ts.Equal(v2.UploadedAt) {
		t.Errorf("token points at (%s, %s); want (%s, %s)", ts, lastID, v2.UploadedAt, v2.ID)
	}
}

func TestVideoRepository_ListByShop_LastPage(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v1 := testVideo()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM videos WHERE status = 'active' AND shop_id = ?`)).
		WithArgs("org-1-shop-1", 3).
		WillReturnRows(videoRows(t, v1))

	page, err := repo.ListByShop(context.Background(), "org-1-shop-1", 2, "")
	if err != nil {
		t.Fatalf("ListByShop() returned unexpected error: %v", err)
	}
	if page.NextPageToken != "" {
		t.Errorf("expected no token on the last page, got %q", page.NextPageToken)
	}
}

func TestKeysetToken_RoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
	id := uuid.NewUUID()

	gotTS, gotID, err := decodeKeysetToken(encodeKeysetToken(ts, id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotTS.Equal(ts) || gotID != id {
		t.Errorf("round trip gave (%s, %s); want (%s, %s)", gotTS, gotID, ts, id)
	}
}

func TestKeysetToken_Invalid(t *testing.T) {
	for _, token := range []string{"!!!", "bm90LWEtdG9rZW4", ""} {
		if _, _, err := decodeKeysetToken(token); err == nil {
			t.Errorf("expected token %q to be rejected", token)
		}
	}
}

func TestVideoRepository_ListAll_InvalidToken(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	if _, err := repo.ListAll(context.Background(), 10, "not-a-number"); err == nil {
		t.Error("expected an invalid offset token to be rejected")
	}
}

func TestVideoRepository_IncrementViewCount(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVideoRepository(sqlDB)
	v := testVideo()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE videos SET view_count = view_count + 1 WHERE id = ? AND status = 'active'`)).
		WithArgs(v.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementViewCount(context.Background(), v.ID); err != nil {
		t.Errorf("IncrementViewCount() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
