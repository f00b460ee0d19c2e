package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount es el único formateador de montos: redondea a la unidad, agrupa miles con
// espacio ASCII y añade la etiqueta de moneda. Ej: 95400 -> "95 400 FCFA".
// No emite separador decimal ni espacios finos (que algunas fuentes PDF pintan como "/").
func FormatAmount(amount decimal.Decimal, currency string) string {
	digits := amount.Round(0).String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	grouped := groupThousands(digits)
	if currency == "" {
		return sign + grouped
	}
	return sign + grouped + " " + currency
}

// FormatHours horas con 2 decimales fijos. Ej: 2 -> "2.00".
func FormatHours(hours decimal.Decimal) string {
	return hours.StringFixed(2)
}

// FormatRate tasa sin ceros sobrantes. Ej: 19.25 -> "19.25", 18.00 -> "18".
func FormatRate(rate decimal.Decimal) string {
	return rate.String()
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
