package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// ErrAlreadyExists is the port-level conditional-insert sentinel, re-exported
// so callers of this package can match it without importing port.
var ErrAlreadyExists = port.ErrAlreadyExists

type ShopRepository struct {
	db *sql.DB
}

// compile-time check: *ShopRepository must satisfy port.ShopRepository
var _ port.ShopRepository = (*ShopRepository)(nil)

func NewShopRepository(db *sql.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// Create is a conditional write: the primary key makes "a shop belongs to
// exactly one organization" structural, and a duplicate ID surfaces as
// ErrAlreadyExists instead of silently re-homing the shop.
func (r *ShopRepository) Create(ctx context.Context, shop *model.Shop) error {
	log.Printf("creating database record for shop %q in organization %q...", shop.ID, shop.OrganizationID)

	const query = `
      INSERT INTO shops
        (id, organization_id, name, email, phone, status, total_videos, total_storage, platform_credential, notify_email)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		shop.ID, shop.OrganizationID, shop.Name,
		shop.Email, shop.Phone, shop.Status,
		shop.TotalVideos, shop.TotalStorage,
		shop.PlatformCredential, shop.NotifyEmail,
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrAlreadyExists
	}
	return err
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*model.Shop, error) {
	log.Printf("fetching shop %q from the database...", id)

	const query = `
      SELECT id, organization_id, name, email, phone, status, total_videos, total_storage, platform_credential, notify_email, created_at, updated_at
      FROM shops
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var shop model.Shop
	if err := row.Scan(
		&shop.ID, &shop.OrganizationID, &shop.Name,
		&shop.Email, &shop.Phone, &shop.Status,
		&shop.TotalVideos, &shop.TotalStorage,
		&shop.PlatformCredential, &shop.NotifyEmail,
		&shop.CreatedAt, &shop.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &shop, nil
}
