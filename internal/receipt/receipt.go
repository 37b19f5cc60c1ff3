// Package receipt renders bills, stock listings and spending summaries as terminal tables.
package receipt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/mmynk/grocer/internal/calculator"
	"github.com/mmynk/grocer/internal/models"
)

// Formatter renders amounts in a fixed currency.
type Formatter struct {
	currency string
}

// New creates a Formatter that prefixes money with currency (e.g. "Rs.").
func New(currency string) *Formatter {
	return &Formatter{currency: currency}
}

// Receipt writes the full tabular bill for one checkout.
func (f *Formatter) Receipt(w io.Writer, userName string, bill models.Bill) {
	fmt.Fprintln(w, "\n======== 🧾Bill ========")
	fmt.Fprintf(w, "Customer: %s\n", userName)
	fmt.Fprintf(w, "Date    : %s\n", bill.Date)

	table := newTable(w)
	table.SetHeader([]string{"S.N.", "Item", "Qty", "Unit", f.label("Rate"), f.label("Total")})
	for i, line := range bill.Items {
		table.Append([]string{
			strconv.Itoa(i + 1),
			line.Name,
			strconv.Itoa(line.Quantity),
			string(line.Unit),
			Number(line.Price),
			Number(line.Total),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n💰 Grand Total: %s%s\n", f.currency, Number(bill.GrandTotal))
	fmt.Fprintln(w, "==========================")
}

// QuickSummary writes a compact one-line-per-item bill.
func (f *Formatter) QuickSummary(w io.Writer, userName string, bill models.Bill) {
	fmt.Fprintf(w, "Bill for %s on %s\n", userName, bill.Date)
	f.lines(w, bill.Items)
	fmt.Fprintf(w, "Grand Total = %s %s\n", f.currency, Number(bill.GrandTotal))
}

// HistoryEntry writes one past bill as it appears in purchase history.
func (f *Formatter) HistoryEntry(w io.Writer, bill models.Bill) {
	fmt.Fprintf(w, "\n🗓 Date: %s\n", bill.Date)
	f.lines(w, bill.Items)
	fmt.Fprintf(w, "💰 Grand Total: %s %s\n", f.currency, Number(bill.GrandTotal))
}

// StockTable lists the catalog with 1-based indexes, the same indexes used to pick items.
func (f *Formatter) StockTable(w io.Writer, items []models.Item) {
	table := newTable(w)
	table.SetHeader([]string{"Index", "Item Name", "Available Stock", "Rate"})
	for i, item := range items {
		table.Append([]string{
			strconv.Itoa(i + 1),
			item.Name,
			fmt.Sprintf("%s %s", Number(item.Amount), item.Unit),
			Number(item.Rate),
		})
	}
	table.Render()
}

// SummaryTable writes the aggregate spending of a customer.
func (f *Formatter) SummaryTable(w io.Writer, summary calculator.SpendingSummary) {
	fmt.Fprintf(w, "Purchases: %d (first %s, last %s)\n", summary.Bills, summary.FirstPurchase, summary.LastPurchase)

	table := newTable(w)
	table.SetHeader([]string{"Item", "Qty", "Unit", f.label("Spent")})
	for _, spend := range summary.Items {
		table.Append([]string{
			spend.Name,
			strconv.Itoa(spend.Quantity),
			string(spend.Unit),
			Number(spend.Total),
		})
	}
	table.SetFooter([]string{"", "", "Total", Number(summary.TotalSpent)})
	table.Render()
}

func (f *Formatter) lines(w io.Writer, lines []models.BillLine) {
	for _, line := range lines {
		fmt.Fprintf(w, "- %s x %d %s = %s%s\n", line.Name, line.Quantity, line.Unit, f.currency, Number(line.Total))
	}
}

func (f *Formatter) label(name string) string {
	if f.currency == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, f.currency)
}

// Money formats an amount with the currency prefix: Rs.150.
func (f *Formatter) Money(v float64) string {
	return f.currency + Number(v)
}

// Number formats an amount without trailing zeros: 150, 2.5, 0.75.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	return table
}
