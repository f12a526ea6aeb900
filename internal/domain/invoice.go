package domain

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is the UAE standard rate.
var DefaultVATRate = decimal.NewFromFloat(0.05)

// Company is the issuer printed at the top of an invoice.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TRN     string
}

// InvoiceLine is a priced row of an invoice.
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is the data needed to print a tax invoice for a trade.
type Invoice struct {
	ID            string
	Title         string
	Company       Company
	PartyName     string
	PartyTRN      string
	Number        int64
	Date          time.Time
	TradeType     TradeType
	Currency      string
	Lines         []InvoiceLine
	Subtotal      decimal.Decimal
	VATRate       decimal.Decimal
	VAT           decimal.Decimal
	Total         decimal.Decimal
	AmountInWords string
}

// BuildInvoice prices the trade lines, adds VAT and spells out the total.
func BuildInvoice(tr *Trade, party *Account, company Company, vatRate decimal.Decimal, currency string) *Invoice {
	inv := &Invoice{
		Title:     "TAX INVOICE",
		Company:   company,
		PartyName: party.Name,
		Number:    tr.ID,
		Date:      tr.Date,
		TradeType: tr.Type,
		Currency:  currency,
		VATRate:   vatRate,
		Subtotal:  decimal.Zero,
	}
	if party.Contact != nil {
		inv.PartyTRN = party.Contact.TRN
	}

	for _, l := range tr.Lines {
		amount := l.Amount(tr.Type)
		inv.Lines = append(inv.Lines, InvoiceLine{
			Description: l.ProductName,
			Quantity:    l.Quantity(tr.Type),
			Price:       l.Price,
			Amount:      amount,
		})
		inv.Subtotal = inv.Subtotal.Add(amount)
	}

	inv.VAT = inv.Subtotal.Mul(vatRate)
	inv.Total = inv.Subtotal.Add(inv.VAT)
	inv.AmountInWords = strings.TrimSpace(currency + " " + strings.ToUpper(DecimalInWords(inv.Total)))

	return inv
}

// VATLabel renders the rate as a percentage, e.g. "VAT 5%".
func (inv *Invoice) VATLabel() string {
	return "VAT " + inv.VATRate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// RenderText writes a plain-text rendition of the invoice.
func (inv *Invoice) RenderText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintln(&b, inv.Company.Name)
	if inv.Company.Phone != "" || inv.Company.Email != "" {
		fmt.Fprintf(&b, "Tel: %s | Email: %s\n", inv.Company.Phone, inv.Company.Email)
	}
	if inv.Company.Address != "" {
		fmt.Fprintln(&b, inv.Company.Address)
	}
	if inv.Company.TRN != "" {
		fmt.Fprintf(&b, "TRN: %s\n", inv.Company.TRN)
	}
	fmt.Fprintf(&b, "\n%s\n\n", inv.Title)

	partyTRN := inv.PartyTRN
	if partyTRN == "" {
		partyTRN = "-"
	}
	fmt.Fprintf(&b, "M/s: %s\nTRN: %s\n", inv.PartyName, partyTRN)
	fmt.Fprintf(&b, "Date: %s\nInvoice No: %d\n\n", inv.Date.Format("02/01/2006"), inv.Number)

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Description\tQty\tPrice (%s)\tAmount (%s)\t\n", inv.Currency, inv.Currency)
	for _, l := range inv.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", l.Description, l.Quantity.String(), l.Price.StringFixed(2), l.Amount.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\tSub Total :\t%s\t\n", inv.Subtotal.StringFixed(2))
	fmt.Fprintf(tw, "\t\t%s :\t%s\t\n", inv.VATLabel(), inv.VAT.StringFixed(2))
	fmt.Fprintf(tw, "\t\tTotal :\t%s\t\n", inv.Total.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(&b, "\n%s\n", inv.AmountInWords)

	_, err := io.WriteString(w, b.String())
	return err
}
