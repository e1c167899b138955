package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	"sportshub/internal/domains/catalog/model"
	"sportshub/shared"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	gRepo "sportshub/shared/repository"
	"sportshub/shared/timezone"
)

// Catalog is the gateway to club inventory. Every Lock* method takes
// SELECT ... FOR UPDATE on the row so checks and writes on that resource
// serialize for the rest of the transaction.
type Catalog interface {
	GetClubTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Club, bool, error)
	GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Player, bool, error)
	LockFacilityTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Facility, bool, error)
	LockCoachTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Coach, bool, error)
	GetCoachTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Coach, bool, error)
	ListWindowsTx(ctx context.Context, tx *sqlx.Tx, coachID string) ([]model.AvailabilityWindow, error)
	LockSessionTx(ctx context.Context, tx *sqlx.Tx, id string) (model.ClassSession, bool, error)
	LockAccessoryTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Accessory, bool, error)
	UpdateSessionBookedTx(ctx context.Context, tx *sqlx.Tx, id string, booked int, actor string) error
	UpdateAccessoryStockTx(ctx context.Context, tx *sqlx.Tx, id string, stock int, actor string) error
}

type repositoryImpl struct {
	clubs       gRepo.Repository[model.Club]
	players     gRepo.Repository[model.Player]
	facilities  gRepo.Repository[model.Facility]
	coaches     gRepo.Repository[model.Coach]
	windows     gRepo.Repository[model.AvailabilityWindow]
	sessions    gRepo.Repository[model.ClassSession]
	accessories gRepo.Repository[model.Accessory]
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		clubs:       gRepo.NewRepository[model.Club](model.EntityClub, model.TableClubs, model.FieldID, db, otel),
		players:     gRepo.NewRepository[model.Player](model.EntityPlayer, model.TablePlayers, model.FieldID, db, otel),
		facilities:  gRepo.NewRepository[model.Facility](model.EntityFacility, model.TableFacilities, model.FieldID, db, otel),
		coaches:     gRepo.NewRepository[model.Coach](model.EntityCoach, model.TableCoaches, model.FieldID, db, otel),
		windows:     gRepo.NewRepository[model.AvailabilityWindow](model.EntityWindow, model.TableWindows, model.FieldID, db, otel),
		sessions:    gRepo.NewRepository[model.ClassSession](model.EntityClassSession, model.TableClassSessions, model.FieldID, db, otel),
		accessories: gRepo.NewRepository[model.Accessory](model.EntityAccessory, model.TableAccessories, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetClubTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Club, bool, error) {
	return r.clubs.GetTx(ctx, tx, gRepo.NoLock, shared.FilterByID(id, model.FieldID, model.TableClubs))
}

func (r *repositoryImpl) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Player, bool, error) {
	return r.players.GetTx(ctx, tx, gRepo.NoLock, shared.FilterByID(id, model.FieldID, model.TablePlayers))
}

func (r *repositoryImpl) LockFacilityTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Facility, bool, error) {
	return r.facilities.GetTx(ctx, tx, gRepo.ForUpdate, shared.FilterByID(id, model.FieldID, model.TableFacilities))
}

func (r *repositoryImpl) LockCoachTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Coach, bool, error) {
	return r.coaches.GetTx(ctx, tx, gRepo.ForUpdate, shared.FilterByID(id, model.FieldID, model.TableCoaches))
}

func (r *repositoryImpl) GetCoachTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Coach, bool, error) {
	return r.coaches.GetTx(ctx, tx, gRepo.NoLock, shared.FilterByID(id, model.FieldID, model.TableCoaches))
}

func (r *repositoryImpl) ListWindowsTx(ctx context.Context, tx *sqlx.Tx, coachID string) ([]model.AvailabilityWindow, error) {
	return r.windows.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.And(gDto.Eq(model.FieldCoachID, coachID)))
}

func (r *repositoryImpl) LockSessionTx(ctx context.Context, tx *sqlx.Tx, id string) (model.ClassSession, bool, error) {
	return r.sessions.GetTx(ctx, tx, gRepo.ForUpdate, shared.FilterByID(id, model.FieldID, model.TableClassSessions))
}

func (r *repositoryImpl) LockAccessoryTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Accessory, bool, error) {
	return r.accessories.GetTx(ctx, tx, gRepo.ForUpdate, shared.FilterByID(id, model.FieldID, model.TableAccessories))
}

func (r *repositoryImpl) UpdateSessionBookedTx(ctx context.Context, tx *sqlx.Tx, id string, booked int, actor string) error {
	return r.sessions.UpdateTx(ctx, tx, map[string]any{
		model.FieldBookedCount:   booked,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}, shared.FilterByID(id, model.FieldID, model.TableClassSessions))
}

func (r *repositoryImpl) UpdateAccessoryStockTx(ctx context.Context, tx *sqlx.Tx, id string, stock int, actor string) error {
	return r.accessories.UpdateTx(ctx, tx, map[string]any{
		model.FieldStock:         stock,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}, shared.FilterByID(id, model.FieldID, model.TableAccessories))
}
