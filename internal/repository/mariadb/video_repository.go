package mariadb

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = "id, organization_id, shop_id, object_key, thumbnail_key, title, description, file_size, duration_seconds, view_count, status, uploader_sub, uploaded_at, updated_at"

// Create inserts the video row and bumps the shop and organization
// aggregate counters in the same transaction, so the counters are never
// stale relative to the rows they summarise.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s in shop %q...", video.ID, video.ShopID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insert = `
      INSERT INTO videos
        (id, organization_id, shop_id, object_key, thumbnail_key, title, description, file_size, duration_seconds, status, uploader_sub, uploaded_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	if _, err := tx.ExecContext(ctx, insert,
		video.ID, video.OrganizationID, video.ShopID,
		video.ObjectKey, video.ThumbnailKey,
		video.Title, video.Description, video.FileSize, video.DurationSecs,
		video.Status, video.UploaderSub, video.UploadedAt,
	); err != nil {
		return err
	}

	const bumpShop = `UPDATE shops SET total_videos = total_videos + 1, total_storage = total_storage + ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, bumpShop, video.FileSize, video.ShopID); err != nil {
		return err
	}
	const bumpOrg = `UPDATE organizations SET total_videos = total_videos + 1, total_storage = total_storage + ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, bumpOrg, video.FileSize, video.OrganizationID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", id)

	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`
	return scanVideo(r.db.QueryRowContext(ctx, query, id))
}

// DeleteActive deletes the row only while its status is still active and
// rolls the counters back down in the same transaction. A concurrent
// second delete affects zero rows and gets sql.ErrNoRows.
func (r *VideoRepository) DeleteActive(ctx context.Context, id uuid.UUID) error {
	log.Printf("deleting database record for video #%s...", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var orgID, shopID string
	var fileSize int64
	const lookup = `SELECT organization_id, shop_id, file_size FROM videos WHERE id = ? AND status = 'active'`
	if err := tx.QueryRowContext(ctx, lookup, id).Scan(&orgID, &shopID, &fileSize); err != nil {
		return err
	}

	const del = `DELETE FROM videos WHERE id = ? AND status = 'active'`
	res, err := tx.ExecContext(ctx, del, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	const dropShop = `UPDATE shops SET total_videos = total_videos - 1, total_storage = total_storage - ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, dropShop, fileSize, shopID); err != nil {
		return err
	}
	const dropOrg = `UPDATE organizations SET total_videos = total_videos - 1, total_storage = total_storage - ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, dropOrg, fileSize, orgID); err != nil {
		return err
	}

	return tx.Commit()
}

// IncrementViewCount bumps the public view counter by one. Best-effort from
// the caller's side: a lost increment is preferable to a failed page view.
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	const bump = `UPDATE videos SET view_count = view_count + 1 WHERE id = ? AND status = 'active'`
	_, err := r.db.ExecContext(ctx, bump, id)
	return err
}

func (r *VideoRepository) ListByShop(ctx context.Context, shopID string, limit int, pageToken string) (port.VideoPage, error) {
	log.Printf("listing videos of shop %q...", shopID)
	return r.listKeyed(ctx, "shop_id = ?", shopID, limit, pageToken)
}

func (r *VideoRepository) ListByOrganization(ctx context.Context, orgID string, limit int, pageToken string) (port.VideoPage, error) {
	log.Printf("listing videos of organization %q...", orgID)
	return r.listKeyed(ctx, "organization_id = ?", orgID, limit, pageToken)
}

// listKeyed pages newest-first on the (scope, uploaded_at, id) index using a
// keyset cursor, so pages stay stable while new videos arrive.
func (r *VideoRepository) listKeyed(ctx context.Context, scopeCond string, scopeVal string, limit int, pageToken string) (port.VideoPage, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE status = 'active' AND ` + scopeCond
	args := []any{scopeVal}

	if pageToken != "" {
		ts, lastID, err := decodeKeysetToken(pageToken)
		if err != nil {
			return port.VideoPage{}, err
		}
		query += ` AND (uploaded_at < ? OR (uploaded_at = ? AND id < ?))`
		args = append(args, ts, ts, lastID)
	}

	query += ` ORDER BY uploaded_at DESC, id DESC LIMIT ?`
	args = append(args, limit+1)

	videos, err := r.queryVideos(ctx, query, args...)
	if err != nil {
		return port.VideoPage{}, err
	}

	page := port.VideoPage{Videos: videos}
	if len(videos) > limit {
		page.Videos = videos[:limit]
		last := page.Videos[limit-1]
		page.NextPageToken = encodeKeysetToken(last.UploadedAt, last.ID)
	}
	return page, nil
}

// ListAll is the system-admin full scan. It pages by plain offset and makes
// no ordering promise; sorting it here would defeat the cursor contract of
// the indexed paths.
func (r *VideoRepository) ListAll(ctx context.Context, limit int, pageToken string) (port.VideoPage, error) {
	log.Printf("listing videos across all tenants...")

	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 {
			return port.VideoPage{}, fmt.Errorf("invalid page token %q", pageToken)
		}
		offset = n
	}

	query := `SELECT ` + videoColumns + ` FROM videos WHERE status = 'active' LIMIT ? OFFSET ?`
	videos, err := r.queryVideos(ctx, query, limit+1, offset)
	if err != nil {
		return port.VideoPage{}, err
	}

	page := port.VideoPage{Videos: videos}
	if len(videos) > limit {
		page.Videos = videos[:limit]
		page.NextPageToken = strconv.Itoa(offset + limit)
	}
	return page, nil
}

func (r *VideoRepository) queryVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideoRows(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row *sql.Row) (*model.Video, error) {
	return scanVideoFrom(row)
}

func scanVideoRows(rows *sql.Rows) (*model.Video, error) {
	return scanVideoFrom(rows)
}

func scanVideoFrom(s rowScanner) (*model.Video, error) {
	var v model.Video
	if err := s.Scan(
		&v.ID, &v.OrganizationID, &v.ShopID,
		&v.ObjectKey, &v.ThumbnailKey,
		&v.Title, &v.Description, &v.FileSize, &v.DurationSecs, &v.ViewCount,
		&v.Status, &v.UploaderSub, &v.UploadedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func encodeKeysetToken(ts time.Time, id uuid.UUID) string {
	raw := ts.UTC().Format(time.RFC3339Nano) + "|" + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeKeysetToken(token string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, uuid.UUID{}, fmt.Errorf("invalid page token: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.UUID{}, fmt.Errorf("invalid page token %q", token)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, uuid.UUID{}, fmt.Errorf("invalid page token timestamp: %w", err)
	}
	var id uuid.UUID
	if err := id.UnmarshalText([]byte(parts[1])); err != nil {
		return time.Time{}, uuid.UUID{}, fmt.Errorf("invalid page token id: %w", err)
	}
	return ts, id, nil
}
