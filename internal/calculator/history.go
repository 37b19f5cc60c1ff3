package calculator

import (
	"sort"

	"github.com/mmynk/grocer/internal/models"
)

// ItemSpend aggregates every purchase of one item (by name and unit) across bills.
type ItemSpend struct {
	Name     string
	Unit     models.Unit
	Quantity int
	Total    float64
}

// SpendingSummary is the aggregate view of a customer's ledger.
type SpendingSummary struct {
	Bills         int
	TotalSpent    float64
	FirstPurchase string // Date of the earliest bill
	LastPurchase  string // Date of the latest bill
	Items         []ItemSpend
}

// FilterByDay keeps the bills whose calendar date equals day.
// An empty day keeps everything.
func FilterByDay(bills []models.Bill, day string) []models.Bill {
	if day == "" {
		return bills
	}
	var out []models.Bill
	for _, bill := range bills {
		if bill.Day() == day {
			out = append(out, bill)
		}
	}
	return out
}

// SummarizeBills totals spending across bills.
// Items are ordered by amount spent, highest first; ties are broken by name.
func SummarizeBills(bills []models.Bill) SpendingSummary {
	summary := SpendingSummary{Bills: len(bills)}

	type key struct {
		name string
		unit models.Unit
	}
	spends := make(map[key]*ItemSpend)

	for _, bill := range bills {
		summary.TotalSpent += bill.GrandTotal

		if summary.FirstPurchase == "" || bill.Date < summary.FirstPurchase {
			summary.FirstPurchase = bill.Date
		}
		if bill.Date > summary.LastPurchase {
			summary.LastPurchase = bill.Date
		}

		for _, line := range bill.Items {
			k := key{line.Name, line.Unit}
			if _, exists := spends[k]; !exists {
				spends[k] = &ItemSpend{Name: line.Name, Unit: line.Unit}
			}
			spends[k].Quantity += line.Quantity
			spends[k].Total += line.Total
		}
	}

	summary.Items = make([]ItemSpend, 0, len(spends))
	for _, spend := range spends {
		summary.Items = append(summary.Items, *spend)
	}
	sort.Slice(summary.Items, func(i, j int) bool {
		if summary.Items[i].Total != summary.Items[j].Total {
			return summary.Items[i].Total > summary.Items[j].Total
		}
		return summary.Items[i].Name < summary.Items[j].Name
	})

	return summary
}
