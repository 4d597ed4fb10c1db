package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/enums"
)

// Settings is the single-row application configuration edited from the admin
// panel. The service layer guarantees at most one row exists.
type Settings struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AppName          string                 `gorm:"column:app_name;not null;default:'EWA Dash'"`
	AppDescription   string                 `gorm:"column:app_description;not null;default:''"`
	AppLogo          string                 `gorm:"column:app_logo;not null;default:''"`
	Favicon          string                 `gorm:"column:favicon;not null;default:''"`
	ServerURL        string                 `gorm:"column:server_url;not null;default:''"`
	Currency         string                 `gorm:"column:currency;not null;default:'USD'"`
	CurrencySymbol   string                 `gorm:"column:currency_symbol;not null;default:'$'"`
	CurrencyPosition enums.CurrencyPosition `gorm:"column:currency_position;not null;default:before"`
	DateFormat       string                 `gorm:"column:date_format;not null;default:'MM/DD/YYYY'"`
	TimeFormat       string                 `gorm:"column:time_format;not null;default:'12h'"`
	Timezone         string                 `gorm:"column:timezone;not null;default:'UTC'"`
	Language         string                 `gorm:"column:language;not null;default:'en'"`
	SupportEmail     string                 `gorm:"column:support_email;not null;default:''"`
	CompanyName      string                 `gorm:"column:company_name;not null;default:''"`
	CompanyAddress   string                 `gorm:"column:company_address;not null;default:''"`
	CompanyPhone     string                 `gorm:"column:company_phone;not null;default:''"`
	CompanyWebsite   string                 `gorm:"column:company_website;not null;default:''"`
	IsActive         bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// FormatCurrency renders an amount with the configured symbol and position.
func (s Settings) FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	if s.CurrencyPosition == enums.CurrencyPositionAfter {
		return fmt.Sprintf("%s%s", fixed, s.CurrencySymbol)
	}
	return fmt.Sprintf("%s%s", s.CurrencySymbol, fixed)
}
