package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad de saldo y movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(repository.TxRepos) error) error
}

// ReportData contenido del relatório de patrimonio.
type ReportData struct {
	Title        string
	LojaName     string
	GeneratedAt  time.Time
	GeneratedBy  string
	Items        []dto.ItemResponse
	TotalValue   decimal.Decimal
	BelowMinimum int
}

// ReportGenerator genera el relatório en PDF.
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, data ReportData) ([]byte, error)
}
