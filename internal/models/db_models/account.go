package db_models

// AccountType partitions tenants: only business accounts may hold paid
// subscriptions. Demo accounts exist for sales walkthroughs and staff
// accounts belong to a business owner's employees.
type AccountType string

const (
	AccountTypeBusiness AccountType = "business"
	AccountTypeStaff    AccountType = "staff"
	AccountTypeDemo     AccountType = "demo"
)

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PhoneNumber  string
	PasswordHash string
	Role         string      `gorm:"default:owner"`
	AccountType  AccountType `gorm:"type:varchar(16);default:business"`
	BusinessName string
}

// CanSubscribe reports whether this account type is eligible for paid plans.
func (a *Account) CanSubscribe() bool {
	return a.AccountType == AccountTypeBusiness
}
