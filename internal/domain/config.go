package domain

import (
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// MerchantConfig is the effective booking configuration of a merchant
type MerchantConfig struct {
	StepMinutes     int
	CapacityPerStep int

	// Same-day cutoffs; zero value means no cutoff for the period
	NoonCutoff    types.TimeString
	EveningCutoff types.TimeString
}

// DefaultMerchantConfig is used when the merchant has no stored configuration
func DefaultMerchantConfig() MerchantConfig {
	return MerchantConfig{
		StepMinutes:     DefaultStepMinutes,
		CapacityPerStep: DefaultCapacityPerStep,
	}
}

// CutoffFor returns the same-day cutoff of the period
func (c MerchantConfig) CutoffFor(p Period) types.TimeString {
	if p == PeriodEvening {
		return c.EveningCutoff
	}
	return c.NoonCutoff
}

// MerchantConfigRow is the raw stored configuration, every field may be absent
type MerchantConfigRow struct {
	MerchantID       int64   `json:"merchant_id"`
	BookingStep      *int    `json:"booking_step,omitempty"`
	MaxBookingByStep *int    `json:"max_booking_by_step,omitempty"`
	TableCount       *int    `json:"booking_step_table_count,omitempty"`
	NoonMaxHour      *string `json:"noon_max_hour,omitempty"`
	EveningMaxHour   *string `json:"evening_max_hour,omitempty"`
}

// ToConfig applies defaults and fallbacks:
// capacity is max_booking_by_step, then booking_step_table_count, then the default.
// Non-positive numbers are treated as absent. Cutoffs not in strict HH:MM form are ignored.
func (r *MerchantConfigRow) ToConfig() MerchantConfig {
	cfg := DefaultMerchantConfig()
	if r == nil {
		return cfg
	}

	if r.BookingStep != nil && *r.BookingStep > 0 {
		cfg.StepMinutes = *r.BookingStep
	}

	switch {
	case r.MaxBookingByStep != nil && *r.MaxBookingByStep > 0:
		cfg.CapacityPerStep = *r.MaxBookingByStep
	case r.TableCount != nil && *r.TableCount > 0:
		cfg.CapacityPerStep = *r.TableCount
	}

	cfg.NoonCutoff = parseCutoff(r.NoonMaxHour)
	cfg.EveningCutoff = parseCutoff(r.EveningMaxHour)

	return cfg
}

func parseCutoff(raw *string) types.TimeString {
	if raw == nil {
		return types.TimeString{}
	}
	ts, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return types.TimeString{}
	}
	return ts
}
