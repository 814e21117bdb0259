package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/tagreel/videos-ms-go/internal/model"
)

func testShop() *model.Shop {
	return &model.Shop{
		ID:                 "org-1-shop-1",
		OrganizationID:     "org-1",
		Name:               "Main Street",
		Email:              "shop@example.com",
		Phone:              "+33100000000",
		Status:             model.OrgStatusActive,
		PlatformCredential: []byte{0x01, 0x02},
		NotifyEmail:        "notify@example.com",
	}
}

func TestShopRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewShopRepository(sqlDB)
	shop := testShop()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shops`)).
		WithArgs(
			shop.ID, shop.OrganizationID, shop.Name,
			shop.Email, shop.Phone, string(shop.Status),
			shop.TotalVideos, shop.TotalStorage,
			shop.PlatformCredential, shop.NotifyEmail,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), shop); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestShopRepository_Create_DuplicateID(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewShopRepository(sqlDB)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shops`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	if err := repo.Create(context.Background(), testShop()); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for a duplicate shop ID, got %v", err)
	}
}

func TestShopRepository_Create_OtherDBErrorPassesThrough(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewShopRepository(sqlDB)
	dbErr := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shops`)).
		WillReturnError(dbErr)

	if err := repo.Create(context.Background(), testShop()); !errors.Is(err, dbErr) {
		t.Errorf("expected the raw database error, got %v", err)
	}
}

func TestShopRepository_GetByID(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewShopRepository(sqlDB)
	shop := testShop()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shops`)).
		WithArgs(shop.ID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "name", "email", "phone", "status",
			"total_videos", "total_storage", "platform_credential", "notify_email",
			"created_at", "updated_at",
		}).AddRow(
			shop.ID, shop.OrganizationID, shop.Name, shop.Email, shop.Phone, string(shop.Status),
			shop.TotalVideos, shop.TotalStorage, shop.PlatformCredential, shop.NotifyEmail,
			shop.CreatedAt, shop.UpdatedAt,
		))

	got, err := repo.GetByID(context.Background(), shop.ID)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}
	if got.OrganizationID != shop.OrganizationID || got.NotifyEmail != shop.NotifyEmail {
		t.Errorf("GetByID() returned %+v; want %+v", got, shop)
	}
}
