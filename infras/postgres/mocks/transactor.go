package mocks

import (
	"context"

	"sportshub/infras/postgres"
)

type passthrough struct{}

// WithinTx implements postgres.Transactor by running fn with a nil transaction.
// Repository mocks never dereference the tx so services can be tested end to end.
func (passthrough) WithinTx(ctx context.Context, fn postgres.TxFunc) error {
	return fn(ctx, nil)
}

func NewTransactor() postgres.Transactor {
	return passthrough{}
}
