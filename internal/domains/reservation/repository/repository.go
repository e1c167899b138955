package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	"sportshub/internal/domains/reservation/model"
	"sportshub/internal/engine/lifecycle"
	"sportshub/shared"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	gRepo "sportshub/shared/repository"
	"sportshub/shared/timezone"
)

const (
	argWindowStart = "window_start"
	argWindowEnd   = "window_end"
)

type Reservation interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error
	Get(ctx context.Context, id string) (model.Reservation, bool, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Reservation, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ListHoldingTx(ctx context.Context, tx *sqlx.Tx, resourceID string, kind lifecycle.Kind, from, to time.Time) ([]model.Reservation, error)
	ListSchedule(ctx context.Context, resourceID string, from, to time.Time) ([]model.Reservation, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id string, status lifecycle.Status, actor string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Reservation, bool, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Reservation, bool, error) {
	return r.GetTx(ctx, tx, gRepo.ForUpdate, shared.FilterByID(id, model.FieldID, model.TableName))
}

// holdingBetween matches rows of the resource that hold it and end after
// from and start before to.
func holdingBetween(resourceID string, from, to time.Time, extra ...any) gDto.FilterGroup {
	filters := []any{
		gDto.Eq(model.FieldResourceID, resourceID),
		gDto.In(model.FieldStatus, lifecycle.HoldingStatuses()),
		gDto.Cmp(model.FieldEndAt, gDto.FilterOperatorGreater, argWindowStart, from),
		gDto.Cmp(model.FieldStartAt, gDto.FilterOperatorLess, argWindowEnd, to),
	}

	return gDto.And(append(filters, extra...)...)
}

// ListHoldingTx must run after the resource row is locked so that rows
// committed by a competing request are visible.
func (r *repositoryImpl) ListHoldingTx(ctx context.Context, tx *sqlx.Tx, resourceID string, kind lifecycle.Kind, from, to time.Time) ([]model.Reservation, error) {
	filter := holdingBetween(resourceID, from, to, gDto.Eq(model.FieldKind, string(kind)))

	return r.GetAllTx(ctx, tx, gDto.QueryParams{SortBy: model.FieldStartAt, SortDir: gDto.SortDirAsc}, filter)
}

func (r *repositoryImpl) ListSchedule(ctx context.Context, resourceID string, from, to time.Time) ([]model.Reservation, error) {
	return r.Repository.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartAt, SortDir: gDto.SortDirAsc}, holdingBetween(resourceID, from, to))
}

func (r *repositoryImpl) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id string, status lifecycle.Status, actor string) error {
	return r.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        string(status),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
}
