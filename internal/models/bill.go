package models

import "strings"

// BillDateLayout is the time layout for Bill.Date. The calendar date is everything before the first space.
const BillDateLayout = "2006-01-02 15:04:05"

// Bill is the receipt for one checkout session.
type Bill struct {
	// Date is the checkout timestamp formatted with BillDateLayout.
	Date string `json:"date"`

	// Items are the purchased lines in the order they were added.
	Items []BillLine `json:"items"`

	// GrandTotal is the sum of every line total.
	GrandTotal float64 `json:"grand_total"`
}

// Day returns the calendar-date prefix of the bill timestamp.
func (b Bill) Day() string {
	day, _, _ := strings.Cut(b.Date, " ")
	return day
}

// BillLine is one purchased item. Name, unit and price are copied from the catalog at purchase time.
type BillLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// LedgerEntry aggregates every bill of one customer.
type LedgerEntry struct {
	// UserID links the entry to its account. Entries written without one are matched by Email.
	UserID string `json:"user_id,omitempty"`

	// Email is the owner's address at the time of the last purchase.
	Email string `json:"email"`

	// Name is the owner's display name at the time of the last purchase.
	Name string `json:"name"`

	// Bills are appended in checkout order and never modified.
	Bills []Bill `json:"bills"`
}

// Owns reports whether the entry belongs to the given account.
func (e LedgerEntry) Owns(userID, email string) bool {
	if e.UserID != "" && userID != "" {
		return e.UserID == userID
	}
	return e.Email == NormalizeEmail(email)
}
