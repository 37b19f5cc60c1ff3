package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/receipt"
	"github.com/mmynk/grocer/internal/service"
)

func (d *Dashboard) adminMenu(ctx context.Context) error {
	return d.menu(ctx, "Admin Dashboard", []menuEntry{
		{label: "Add items", action: d.guard("add_item", true, d.addItem)},
		{label: "View Stock", action: d.guard("view_stock", true, d.viewItems)},
		{label: "Update Stock", action: d.guard("update_stock", true, d.updateStock)},
		{label: "Update Profile", action: d.guard("update_profile", false, d.updateProfile)},
		{label: "Logout"},
	})
}

// amountPrompts are the quantity question and the per-unit word for each kind.
var amountPrompts = map[models.UnitKind][2]string{
	models.KindCount:  {"\nEnter number of pieces: ", "piece"},
	models.KindWeight: {"\nEnter weight in kilograms: ", "kg"},
	models.KindVolume: {"\nEnter volume in litres: ", "L"},
}

func (d *Dashboard) addItem(ctx context.Context) error {
	name, err := d.readName("\nEnter item name: ")
	if err != nil {
		return err
	}

	d.p.Println("\nSelect amount type:")
	d.p.Println("1. Count (pieces/units)")
	d.p.Println("2. Weight (kilograms)")
	d.p.Println("3. Volume (litres)")
	choice, err := d.p.BoundedInt("\nEnter choice (1-3): ", 1, 4)
	if err != nil {
		return err
	}
	kind := models.UnitKind(choice)

	prompts := amountPrompts[kind]
	amount, err := d.p.Float(prompts[0])
	if err != nil {
		return err
	}
	rate, err := d.p.Float(fmt.Sprintf("Enter price per %s: ", prompts[1]))
	if err != nil {
		return err
	}

	item, err := d.inventory.AddItem(ctx, name, kind, amount, rate)
	switch {
	case errors.Is(err, service.ErrItemExists):
		d.p.Printf("❌ Item '%s' already exists in the list.\n", service.TitleName(name))
		return nil
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidName):
		d.p.Printf("❌ %v\n", err)
		return nil
	case err != nil:
		return err
	}

	d.p.Printf("✅ Item added: %s - %s %s @ %s per %s\n",
		item.Name, receipt.Number(item.Amount), item.Unit, receipt.Number(item.Rate), item.Unit)
	return nil
}

func (d *Dashboard) updateStock(ctx context.Context) error {
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

	index, err := d.p.BoundedInt(fmt.Sprintf("Enter the item index to update (1-%d): ", len(items)), 1, len(items)+1)
	if err != nil {
		return err
	}
	item := items[index-1]

	d.p.Printf("\nEditing '%s' (Available: %s %s @ %s/%s)\n",
		item.Name, receipt.Number(item.Amount), item.Unit, d.receipts.Money(item.Rate), item.Unit)
	d.p.Println("1. Update quantity")
	d.p.Println("2. Update price per unit")
	d.p.Println("3. Both quantity and price")
	d.p.Println("4. Update Name")
	d.p.Println("5. Delete Item")
	choice, err := d.p.BoundedInt("Enter your choice(1-5): ", 1, 6)
	if err != nil {
		return err
	}

	u := service.StockUpdate{Index: index, Op: service.StockOp(choice)}
	if err := d.readStockUpdate(item, &u); err != nil {
		return err
	}

	u.Confirmed, err = d.p.Confirm(d.inventory.Describe(item, u) + " (y/n): ")
	if err != nil {
		return err
	}

	result, err := d.inventory.UpdateStock(ctx, u)
	switch {
	case errors.Is(err, service.ErrUpdateCancelled):
		d.p.Println("❌ Update cancelled.")
		return nil
	case errors.Is(err, service.ErrItemExists):
		d.p.Printf("❌ Item '%s' already exists in the list.\n", service.TitleName(u.Name))
		return nil
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidName):
		d.p.Printf("❌ %v\n", err)
		return nil
	case err != nil:
		return err
	}

	d.printUpdated(u.Op, result)

	d.p.Println("\n📦 Updated Stock:")
	d.printStock(result.Catalog)

	undo, err := d.p.Confirm("\nDo you want to undo the last update? (y/n): ")
	if err != nil {
		return err
	}
	if !undo {
		return nil
	}
	if err := d.inventory.Undo(ctx, result); err != nil {
		return err
	}
	d.p.Println("↩️ Last update undone.")
	d.p.Println("\n📦 Stock after undo:")
	return d.viewItems(ctx)
}

// readStockUpdate asks for the values the chosen operation needs.
func (d *Dashboard) readStockUpdate(item models.Item, u *service.StockUpdate) error {
	var err error
	switch u.Op {
	case service.OpSetQuantity:
		u.Amount, err = d.p.Float(fmt.Sprintf("Enter new quantity for %s(in %s): ", item.Name, item.Unit))
	case service.OpSetPrice:
		u.Rate, err = d.p.Float(fmt.Sprintf("Enter new price per %s for %s: ", item.Unit, item.Name))
	case service.OpSetBoth:
		u.Amount, err = d.p.Float(fmt.Sprintf("Enter new quantity for %s (%s): ", item.Name, item.Unit))
		if err != nil {
			return err
		}
		u.Rate, err = d.p.Float(fmt.Sprintf("Enter new price per %s for %s: ", item.Unit, item.Name))
	case service.OpRename:
		u.Name, err = d.readName(fmt.Sprintf("Enter the new name for %s: ", item.Name))
		if err != nil {
			return err
		}
		var change bool
		change, err = d.p.Confirm("Do you also want to change the unit?(y/n): ")
		if err != nil || !change {
			return err
		}
		d.p.Println("Select new unit: ")
		d.p.Println("1. count(pcs)")
		d.p.Println("2. weight(kg)")
		d.p.Println("3. volume (L)")
		var choice int
		choice, err = d.p.BoundedInt("Enter choice(1-3): ", 1, 4)
		if err != nil {
			return err
		}
		u.Unit, err = models.UnitKind(choice).Unit()
	}
	return err
}

// readName asks until the answer is not blank.
func (d *Dashboard) readName(prompt string) (string, error) {
	for {
		name, err := d.p.Line(prompt)
		if err != nil || name != "" {
			return name, err
		}
		d.p.Println("❌ Item name cannot be empty.")
	}
}

func (d *Dashboard) printUpdated(op service.StockOp, result *service.UpdateResult) {
	before := result.Before
	after := before
	for _, item := range result.Catalog {
		if item.ID == before.ID {
			after = item
		}
	}

	switch op {
	case service.OpSetQuantity:
		d.p.Printf("✅ Quantity updated to %s %s\n", receipt.Number(after.Amount), after.Unit)
	case service.OpSetPrice:
		d.p.Printf("✅ Price updated to %s per %s\n", d.receipts.Money(after.Rate), after.Unit)
	case service.OpSetBoth:
		d.p.Println("✅ Quantity and Price updated.")
	case service.OpRename:
		d.p.Printf("✅ Item name updated to '%s' with unit '%s'\n", after.Name, after.Unit)
	case service.OpDelete:
		d.p.Printf("🗑️ '%s' has been deleted.\n", before.Name)
	}
}

func (d *Dashboard) printStock(items []models.Item) {
	if len(items) == 0 {
		d.p.Printf("\n❌ No items found in the store.\n\n")
		return
	}
	d.receipts.StockTable(d.p.Out(), items)
}
