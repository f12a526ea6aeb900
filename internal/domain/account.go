package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Well-known account groups.
const (
	GroupBank      = 1
	GroupCash      = 2
	GroupCustomers = 10
	GroupSuppliers = 11
	GroupExpenses  = 16
)

// AccountGroup classifies accounts (bank, cash, customers, suppliers, ...).
type AccountGroup struct {
	ID   int
	Name string
}

// Contact holds the details kept for customer accounts.
type Contact struct {
	Tel         string
	Fax         string
	Email       string
	ContactName string
	Address     string
	TRN         string
}

// Account is a chart-of-accounts entry.
type Account struct {
	ID             int64
	Name           string
	GroupID        int
	OpeningBalance decimal.Decimal
	Contact        *Contact
}

// IsCustomer reports whether the account carries contact details.
func (a *Account) IsCustomer() bool {
	return a.GroupID == GroupCustomers
}

// Validate checks the fields the account form requires.
func (a *Account) Validate() error {
	name, err := ValidateName("account", a.Name)
	a.Name = name
	if err != nil {
		return err
	}
	if a.GroupID <= 0 {
		return ErrGroupRequired
	}
	if !a.IsCustomer() {
		a.Contact = nil
		return nil
	}
	if a.Contact != nil {
		if err := ValidateEmail(a.Contact.Email); err != nil {
			return fmt.Errorf("account contact: %w", err)
		}
	}
	return nil
}

// GroupFilter selects accounts by group. An empty Include list admits every
// group not listed in Exclude.
type GroupFilter struct {
	Include []int
	Exclude []int
}

// Allows reports whether an account of the given group passes the filter.
func (f GroupFilter) Allows(groupID int) bool {
	if slices.Contains(f.Exclude, groupID) {
		return false
	}
	return len(f.Include) == 0 || slices.Contains(f.Include, groupID)
}

// Filter keeps the accounts that pass f, preserving order.
func (f GroupFilter) Filter(accounts []*Account) []*Account {
	out := make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		if f.Allows(a.GroupID) {
			out = append(out, a)
		}
	}
	return out
}

// Side is one side of a trade or fund form.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
	SideFrom   Side = "from"
	SideTo     Side = "to"
	// SideParty lists the accounts whose trades can be browsed and invoiced.
	SideParty Side = "party"
)

var bankAndCash = []int{GroupBank, GroupCash}
