package billing

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
