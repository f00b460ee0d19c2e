// Package billing contiene el cálculo de facturas sobre decimal de punto fijo (servicio de dominio).
//
//	Línea     = Horas × TarifaHoraria
//	Subtotal  = Σ Línea
//	Impuesto  = Subtotal × Tasa / 100
//	Total     = Subtotal + Impuesto
//	Monto     = round(Total) a la unidad de moneda (lo que se guarda en la factura)
package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Scale decimales que guardan las columnas NUMERIC de horas, tarifas y tasas.
const Scale = 2

// FitsScale indica si d cabe en Scale decimales sin redondeo.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}

// Line una línea facturable ya valorada.
type Line struct {
	Hours  decimal.Decimal
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Totals resumen de una factura.
type Totals struct {
	TotalHours decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	Amount     decimal.Decimal // Total redondeado a la unidad
}

// PriceLine valora una entrada de tiempo. Sin tarifa no se factura en cero: es ErrMissingHourlyRate.
func PriceLine(hours decimal.Decimal, rate *decimal.Decimal) (Line, error) {
	if rate == nil {
		return Line{}, domain.ErrMissingHourlyRate
	}
	if rate.IsNegative() || !hours.IsPositive() {
		return Line{}, domain.ErrInvalidInput
	}
	return Line{Hours: hours, Rate: *rate, Amount: hours.Mul(*rate)}, nil
}

// ComputeTotals suma las líneas y aplica la tasa (porcentaje).
func ComputeTotals(lines []Line, taxRate decimal.Decimal) Totals {
	t := Totals{}
	for _, l := range lines {
		t.TotalHours = t.TotalHours.Add(l.Hours)
		t.Subtotal = t.Subtotal.Add(l.Amount)
	}
	t.TaxAmount = TaxOf(t.Subtotal, taxRate)
	t.Total = t.Subtotal.Add(t.TaxAmount)
	t.Amount = t.Total.Round(0)
	return t
}

// TaxOf impuesto de un subtotal para una tasa en porcentaje. División exacta (÷100).
func TaxOf(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Div(hundred)
}

// ResolveTaxRate usa la tasa enviada por el cliente si viene, si no la tasa por defecto.
// La tasa debe estar en [0, 100] y tener a lo sumo dos decimales (NUMERIC(5,2)).
func ResolveTaxRate(raw string, def decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() || rate.GreaterThan(hundred) || !FitsScale(rate) {
		return decimal.Zero, domain.ErrInvalidTaxRate
	}
	return rate, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate acepta RFC3339 o YYYY-MM-DD. Fechas sin zona se interpretan en UTC.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveDueDate devuelve la fecha enviada o now + days si viene vacía.
// Una fecha que no se puede interpretar es ErrInvalidDueDate.
func ResolveDueDate(raw string, now time.Time, days int) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now.AddDate(0, 0, days), nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		return time.Time{}, domain.ErrInvalidDueDate
	}
	return t, nil
}
