package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/grocer/internal/middleware"
	"github.com/mmynk/grocer/internal/service"
)

func (d *Dashboard) customerMenu(ctx context.Context) error {
	return d.menu(ctx, "User Dashboard", []menuEntry{
		{label: "View Items", action: d.guard("view_items", false, d.viewItems)},
		{label: "Buy Item", action: d.guard("buy_item", false, d.buyItem)},
		{label: "View Purchase History", action: d.guard("view_history", false, d.viewHistory)},
		{label: "Update Profile", action: d.guard("update_profile", false, d.updateProfile)},
		{label: "Logout"},
	})
}

func (d *Dashboard) viewItems(ctx context.Context) error {
	items, err := d.inventory.ListItems(ctx)
	if errors.Is(err, service.ErrNoItems) {
		d.p.Printf("\n❌ No items found in the store.\n\n")
		return nil
	}
	if err != nil {
		return err
	}

	d.p.Println("\n📦 Available Items:")
	d.receipts.StockTable(d.p.Out(), items)
	return nil
}

func (d *Dashboard) buyItem(ctx context.Context) error {
	checkout, err := d.purchases.StartCheckout(ctx)
	if errors.Is(err, service.ErrNoItemsAvailable) {
		d.p.Println("❌ No items available.")
		return nil
	}
	if err != nil {
		return err
	}

	for {
		items := checkout.Items()
		if !anyInStock(checkout, len(items)) {
			if checkout.Len() == 0 {
				d.p.Println("❌ No items available.")
				return nil
			}
			d.p.Println("❌ Everything else is out of stock.")
			break
		}

		d.p.Println("\n📦 Available Items:")
		d.receipts.StockTable(d.p.Out(), items)

		index, err := d.p.BoundedInt(fmt.Sprintf("Enter the item index(1-%d): ", len(items)), 1, len(items)+1)
		if err != nil {
			return err
		}
		item := items[index-1]

		limit, err := checkout.MaxQuantity(index)
		if err != nil {
			return err
		}
		if limit == 0 {
			d.p.Printf("❌ %s is out of stock.\n", item.Name)
			continue
		}

		quantity, err := d.p.BoundedInt(fmt.Sprintf("Enter the quantity(1-%d %s): ", limit, item.Unit), 1, limit+1)
		if err != nil {
			return err
		}
		line, err := checkout.Add(index, quantity)
		if err != nil {
			return err
		}
		d.p.Printf("🛒 Added %s x %d %s (%d in cart). Running total: %s\n",
			line.Name, line.Quantity, line.Unit, len(checkout.Lines()), d.receipts.Money(checkout.GrandTotal()))

		more, err := d.p.Confirm("Add more items? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	bill, err := checkout.Complete(ctx, middleware.GetUserID(ctx), d.user.Name, middleware.GetEmail(ctx))
	if err != nil {
		return err
	}

	d.p.Println("\n✅ Purchase successful!")
	proper, err := d.p.Confirm("Do you want a proper bill? (y/n): ")
	if err != nil {
		return err
	}
	if proper {
		d.receipts.Receipt(d.p.Out(), d.user.Name, *bill)
	} else {
		d.receipts.QuickSummary(d.p.Out(), d.user.Name, *bill)
	}
	return nil
}

func (d *Dashboard) viewHistory(ctx context.Context) error {
	userID, email := middleware.GetUserID(ctx), middleware.GetEmail(ctx)

	_, err := d.purchases.History(ctx, userID, email, "")
	if errors.Is(err, service.ErrNoHistory) {
		d.p.Printf("\n❌ No purchase history found for %s\n", d.user.Name)
		return nil
	}
	if err != nil {
		return err
	}

	day, err := d.p.Line("Enter a date to filter (YYYY-MM-DD) or press Enter to view all: ")
	if err != nil {
		return err
	}

	bills, err := d.purchases.History(ctx, userID, email, day)
	if errors.Is(err, service.ErrNoBillsOnDate) {
		d.p.Printf("\n❌ No purchases found for the date %s\n", day)
		return nil
	}
	if err != nil {
		return err
	}

	d.p.Printf("\n📜 Purchase history for %s (%s)\n", d.user.Name, email)
	for _, bill := range bills {
		d.receipts.HistoryEntry(d.p.Out(), bill)
		if day == "" {
			continue
		}
		proper, err := d.p.Confirm("Do you want a proper bill for this purchase? (y/n): ")
		if err != nil {
			return err
		}
		if proper {
			d.receipts.Receipt(d.p.Out(), d.user.Name, bill)
		}
	}

	if day == "" {
		summary, err := d.purchases.Summary(ctx, userID, email)
		if err != nil {
			return err
		}
		d.p.Println("\n📊 Spending summary:")
		d.receipts.SummaryTable(d.p.Out(), summary)
	}
	return nil
}

func anyInStock(checkout *service.Checkout, n int) bool {
	for i := 1; i <= n; i++ {
		if limit, err := checkout.MaxQuantity(i); err == nil && limit > 0 {
			return true
		}
	}
	return false
}
