package domain

import (
	"errors"
	"testing"
)

func TestAccountValidate(t *testing.T) {
	t.Parallel()

	t.Run("trims name", func(t *testing.T) {
		a := &Account{Name: "  Cash in hand ", GroupID: GroupCash}
		if err := a.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a.Name != "Cash in hand" {
			t.Errorf("expected trimmed name, got %q", a.Name)
		}
	})

	t.Run("name required", func(t *testing.T) {
		a := &Account{Name: "   ", GroupID: GroupCash}
		if err := a.Validate(); !errors.Is(err, ErrNameRequired) {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("group required", func(t *testing.T) {
		a := &Account{Name: "Misc"}
		if err := a.Validate(); !errors.Is(err, ErrGroupRequired) {
			t.Fatalf("expected ErrGroupRequired, got %v", err)
		}
	})

	t.Run("contact dropped for non customers", func(t *testing.T) {
		a := &Account{Name: "Supplier", GroupID: GroupSuppliers, Contact: &Contact{Tel: "1"}}
		if err := a.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a.Contact != nil {
			t.Errorf("expected contact to be cleared")
		}
	})

	t.Run("contact kept for customers", func(t *testing.T) {
		a := &Account{Name: "Customer", GroupID: GroupCustomers, Contact: &Contact{TRN: "100"}}
		if err := a.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a.Contact == nil || a.Contact.TRN != "100" {
			t.Errorf("expected contact to be kept, got %+v", a.Contact)
		}
	})

	t.Run("customer email checked", func(t *testing.T) {
		a := &Account{Name: "Customer", GroupID: GroupCustomers, Contact: &Contact{Email: "not-an-email"}}
		if err := a.Validate(); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})
}

func TestGroupFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter GroupFilter
		group  int
		want   bool
	}{
		{"include match", GroupFilter{Include: []int{1, 2}}, 2, true},
		{"include miss", GroupFilter{Include: []int{1, 2}}, 10, false},
		{"exclude hit", GroupFilter{Exclude: []int{1, 2}}, 1, false},
		{"exclude miss", GroupFilter{Exclude: []int{1, 2}}, 11, true},
		{"empty filter", GroupFilter{}, 99, true},
	}

	for _, tt := range tests {
		if got := tt.filter.Allows(tt.group); got != tt.want {
			t.Errorf("%s: Allows(%d) = %v, want %v", tt.name, tt.group, got, tt.want)
		}
	}
}

func TestGroupFilterFilter(t *testing.T) {
	t.Parallel()

	accounts := []*Account{
		{ID: 1, GroupID: GroupBank},
		{ID: 2, GroupID: GroupCustomers},
		{ID: 3, GroupID: GroupCash},
	}

	got := GroupFilter{Include: []int{GroupBank, GroupCash}}.Filter(accounts)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}
