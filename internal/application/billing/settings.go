package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/pkg/config"
)

// Settings parámetros de facturación ya interpretados.
type Settings struct {
	DefaultTaxRate       decimal.Decimal
	DueDays              int
	Currency             string
	ReferencePrefix      string
	MaxReferenceAttempts int
}

// SettingsFromConfig interpreta la sección Billing de la configuración.
func SettingsFromConfig(c config.BillingConfig) (Settings, error) {
	rate, err := decimal.NewFromString(c.DefaultTaxRate)
	if err != nil {
		return Settings{}, fmt.Errorf("BILLING_TAX_RATE inválida %q: %w", c.DefaultTaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return Settings{}, fmt.Errorf("BILLING_TAX_RATE fuera de rango: %s", rate)
	}
	if !domainbilling.FitsScale(rate) {
		return Settings{}, fmt.Errorf("BILLING_TAX_RATE admite dos decimales: %s", rate)
	}
	s := Settings{
		DefaultTaxRate:       rate,
		DueDays:              c.DueDays,
		Currency:             c.Currency,
		ReferencePrefix:      c.ReferencePrefix,
		MaxReferenceAttempts: c.MaxReferenceAttempts,
	}
	if s.MaxReferenceAttempts < 1 {
		s.MaxReferenceAttempts = 1
	}
	return s, nil
}
