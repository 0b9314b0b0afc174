package domain

import "time"

type PaymentType string

const (
	PaymentTypeDP   PaymentType = "DP"
	PaymentTypeFull PaymentType = "FULL"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodEwallet  PaymentMethod = "EWALLET"
)

// PaymentSettlement is the income split and payment schedule for a confirmed
// booking. Computed once at confirmation and persisted by the ledger.
// Invariant: OwnerIncomeCents + DriverIncomeCents == TotalCents.
type PaymentSettlement struct {
	TotalCents        int64         `json:"total_cents"`
	OwnerIncomeCents  int64         `json:"owner_income_cents"`
	DriverIncomeCents int64         `json:"driver_income_cents"`
	PaymentType       PaymentType   `json:"payment_type"`
	PaymentMethod     PaymentMethod `json:"payment_method"`

	// Payment schedule: DP pays half now and the remainder at delivery,
	// FULL pays everything now.
	DueNowCents        int64 `json:"due_now_cents"`
	DueOnDeliveryCents int64 `json:"due_on_delivery_cents"`
}

type LedgerEntryType string

const (
	LedgerEntryOwnerIncome        LedgerEntryType = "OWNER_INCOME"
	LedgerEntryDriverIncome       LedgerEntryType = "DRIVER_INCOME"
	LedgerEntryOvertimeAdjustment LedgerEntryType = "OVERTIME_ADJUSTMENT"
)

// LedgerEntry is one durable income record produced to the payment ledger.
type LedgerEntry struct {
	ID          int64           `json:"id"`
	RentalID    string          `json:"rental_id"`
	Email       string          `json:"email"` // counterpart receiving the amount
	AmountCents int64           `json:"amount_cents"`
	Type        LedgerEntryType `json:"type"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
}
