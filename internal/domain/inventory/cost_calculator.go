package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado tras una entrada.
// NuevoCosto = ((SaldoActual * CostoActual) + (CantEntrada * CostoEntrada)) / (SaldoActual + CantEntrada)
func CostCalculator(saldoActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := saldoActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := saldoActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}
