package domain

type ItemType string

const (
	ItemTenant    ItemType = "tenant"
	ItemNonTenant ItemType = "non_tenant"
)

type PermitStatus string

const (
	PermitPending  PermitStatus = "pending"
	PermitApproved PermitStatus = "approved"
	PermitRejected PermitStatus = "rejected"
	PermitExpired  PermitStatus = "expired"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"tenant": true, "non_tenant": true,
}
