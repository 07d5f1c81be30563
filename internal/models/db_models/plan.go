package db_models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BillingCycle string

const (
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
	CycleLifetime  BillingCycle = "lifetime"
	CycleCustom    BillingCycle = "custom"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"`
	Name        string
	Description *string
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency    string          `gorm:"size:3"`
	Cycle       BillingCycle    `gorm:"type:varchar(16)"`
	// BillingDays overrides the cycle length; only meaningful when Cycle is
	// "custom".
	BillingDays  *int
	TrialEnabled bool
	TrialDays    int32 `gorm:"default:0"`
	// Features maps feature names to booleans. A missing key means enabled.
	Features  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	IsActive  bool           `gorm:"default:true"`
	IsDefault bool           `gorm:"default:false"`
}

// FeatureEnabled checks a named feature flag. Plans that never mention a
// feature get it by default; only an explicit false switches it off.
func (p *Plan) FeatureEnabled(name string) bool {
	if len(p.Features) == 0 {
		return true
	}
	var flags map[string]bool
	if err := json.Unmarshal(p.Features, &flags); err != nil {
		return true
	}
	enabled, ok := flags[name]
	if !ok {
		return true
	}
	return enabled
}
