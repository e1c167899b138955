package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	"sportshub/internal/domains/payment/model"
	"sportshub/shared"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	gRepo "sportshub/shared/repository"
)

var earningsQuery = fmt.Sprintf(`SELECT payable_type,
	COUNT(*) AS payments,
	COALESCE(SUM(amount), 0) AS gross,
	COALESCE(SUM(admin_fee), 0) AS admin_fees,
	COALESCE(SUM(club_earning), 0) AS club_earnings
FROM %s
WHERE club_id = :club_id AND status = :status
GROUP BY payable_type
ORDER BY payable_type`, model.TableName)

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error
	Get(ctx context.Context, id string) (model.Payment, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Earnings(ctx context.Context, clubID string) ([]model.Earning, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// InsertTx reports a second payment for the same payable as ALREADY_PAID.
// The unique (payable_type, payable_id) index backs the status check done
// under the reservation lock.
func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error {
	err := r.Repository.InsertTx(ctx, tx, payment)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return failure.StateConflict(failure.ReasonAlreadyPaid, "reservation is already paid") // nolint:wrapcheck
	}

	return err
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Payment, bool, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) Earnings(ctx context.Context, clubID string) ([]model.Earning, error) {
	var rows []model.Earning

	err := r.Select(ctx, &rows, earningsQuery, map[string]any{
		model.FieldClubID: clubID,
		model.FieldStatus: model.StatusPaid,
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}
