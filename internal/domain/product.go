package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MasterKind names one of the lookup tables behind the product form.
type MasterKind string

const (
	MasterCategory MasterKind = "category"
	MasterBrand    MasterKind = "brand"
	MasterUnit     MasterKind = "unit"
)

type masterTable struct {
	table    string
	idColumn string
	column   string
}

var masterTables = map[MasterKind]masterTable{
	MasterCategory: {table: "category", idColumn: "id", column: "catname"},
	MasterBrand:    {table: "brands", idColumn: "id", column: "brname"},
	MasterUnit:     {table: "units", idColumn: "id", column: "unitname"},
}

// ParseMasterKind accepts singular or plural names ("brand", "brands").
func ParseMasterKind(s string) (MasterKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "category", "categories":
		return MasterCategory, nil
	case "brand", "brands":
		return MasterBrand, nil
	case "unit", "units":
		return MasterUnit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMasterKind, s)
}

// Table returns the backing table, its id column and its name column.
func (k MasterKind) Table() (table, idColumn, nameColumn string, err error) {
	t, ok := masterTables[k]
	if !ok {
		return "", "", "", ErrInvalidMasterKind
	}
	return t.table, t.idColumn, t.column, nil
}

// Master is a category, brand or unit.
type Master struct {
	ID   int64
	Kind MasterKind
	Name string
}

// Validate trims the name and requires it.
func (m *Master) Validate() error {
	name, err := ValidateName(string(m.Kind), m.Name)
	m.Name = name
	if err != nil {
		return err
	}
	if _, ok := masterTables[m.Kind]; !ok {
		return ErrInvalidMasterKind
	}
	return nil
}

// Product is a stock item.
type Product struct {
	ID           int64
	Name         string
	CategoryID   int64
	BrandID      int64
	UnitID       int64
	OpeningQty   decimal.Decimal
	OpeningPrice decimal.Decimal
	SellPrice    decimal.Decimal
}

// Validate trims the name and requires it; prices and opening stock may not
// be negative.
func (p *Product) Validate() error {
	name, err := ValidateName("product", p.Name)
	p.Name = name
	if err != nil {
		return err
	}
	if p.OpeningQty.IsNegative() || p.OpeningPrice.IsNegative() || p.SellPrice.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
