package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

type OrganizationRepository struct {
	db *sql.DB
}

// compile-time check: *OrganizationRepository must satisfy port.OrganizationRepository
var _ port.OrganizationRepository = (*OrganizationRepository)(nil)

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	log.Printf("creating database record for organization %q (%s)...", org.ID, org.OrgType)

	// branch rows must reference their agency; agency rows must not
	if org.OrgType == model.OrgTypeBranch && org.ParentID == nil {
		return fmt.Errorf("branch organization %q requires a parent", org.ID)
	}
	if org.OrgType == model.OrgTypeAgency && org.ParentID != nil {
		return fmt.Errorf("agency organization %q must not have a parent", org.ID)
	}

	const query = `
      INSERT INTO organizations
        (id, org_type, parent_id, name, unit_price, status, total_videos, total_storage)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		org.ID, org.OrgType, org.ParentID, org.Name,
		org.UnitPrice, org.Status, org.TotalVideos, org.TotalStorage,
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrAlreadyExists
	}
	return err
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	log.Printf("fetching organization %q from the database...", id)

	const query = `
      SELECT id, org_type, parent_id, name, unit_price, status, total_videos, total_storage, created_at, updated_at
      FROM organizations
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var org model.Organization
	if err := row.Scan(
		&org.ID, &org.OrgType, &org.ParentID, &org.Name,
		&org.UnitPrice, &org.Status, &org.TotalVideos, &org.TotalStorage,
		&org.CreatedAt, &org.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &org, nil
}
