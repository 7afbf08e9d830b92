package storage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/catalog"
	"github.com/lucafour/pizzeria/favorites"
	"github.com/lucafour/pizzeria/order"
	"github.com/lucafour/pizzeria/pricing"
)

// ItemToRecord converts a catalog item to its persisted shape.
func ItemToRecord(item catalog.Item) ItemRecord {
	return ItemRecord{
		ID:          item.ID,
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.String(),
		Category:    item.Category,
		Ingredients: append([]string(nil), item.Ingredients...),
		Vegetarian:  item.Vegetarian,
		Spicy:       item.Spicy,
		Rating:      item.Rating,
		PrepMinutes: item.PrepMinutes,
	}
}

// ItemFromRecord converts a persisted item record back to the domain
// type.
func ItemFromRecord(record ItemRecord) (catalog.Item, error) {
	price, err := decimal.NewFromString(record.UnitPrice)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("parse unit price for item %s: %w", record.ID, err)
	}
	return catalog.Item{
		ID:          record.ID,
		Name:        record.Name,
		UnitPrice:   price,
		Category:    record.Category,
		Ingredients: append([]string(nil), record.Ingredients...),
		Vegetarian:  record.Vegetarian,
		Spicy:       record.Spicy,
		Rating:      record.Rating,
		PrepMinutes: record.PrepMinutes,
	}, nil
}

// CatalogToSection builds the persisted catalog section.
func CatalogToSection(items []catalog.Item) CatalogSection {
	records := make([]ItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, ItemToRecord(item))
	}
	return CatalogSection{SchemaVersion: SchemaVersion, Items: records}
}

// CatalogFromSection decodes the persisted catalog section.
func CatalogFromSection(section CatalogSection) ([]catalog.Item, error) {
	items := make([]catalog.Item, 0, len(section.Items))
	for _, record := range section.Items {
		item, err := ItemFromRecord(record)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// CartToSection builds the persisted cart section.
func CartToSection(lines []cart.Line, open bool) CartSection {
	records := make([]LineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, LineRecord{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return CartSection{SchemaVersion: SchemaVersion, Lines: records, Open: open}
}

// CartFromSection decodes the persisted cart section.
func CartFromSection(section CartSection) []cart.Line {
	lines := make([]cart.Line, 0, len(section.Lines))
	for _, record := range section.Lines {
		lines = append(lines, cart.Line{ItemID: record.ItemID, Quantity: record.Quantity})
	}
	return lines
}

// OrderToRecord converts an order snapshot to its persisted shape.
func OrderToRecord(o order.Order) OrderRecord {
	lines := make([]OrderLineRecord, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineRecord{
			ItemID:         line.ItemID,
			Item:           ItemToRecord(line.Item),
			Quantity:       line.Quantity,
			OriginalPrice:  line.OriginalPrice.String(),
			DiscountAmount: line.DiscountAmount.String(),
			FinalPrice:     line.FinalPrice.String(),
		})
	}
	return OrderRecord{
		ID:        o.ID,
		Lines:     lines,
		Subtotal:  o.Subtotal.String(),
		Discount:  o.Discount.String(),
		Total:     o.Total.String(),
		CreatedAt: o.CreatedAt,
		Status:    o.Status.String(),
	}
}

// OrderFromRecord decodes a persisted order record.
func OrderFromRecord(record OrderRecord) (order.Order, error) {
	subtotal, err := decimal.NewFromString(record.Subtotal)
	if err != nil {
		return order.Order{}, fmt.Errorf("parse subtotal for order %s: %w", record.ID, err)
	}
	discount, err := decimal.NewFromString(record.Discount)
	if err != nil {
		return order.Order{}, fmt.Errorf("parse discount for order %s: %w", record.ID, err)
	}
	total, err := decimal.NewFromString(record.Total)
	if err != nil {
		return order.Order{}, fmt.Errorf("parse total for order %s: %w", record.ID, err)
	}
	status, err := order.StatusFromLabel(record.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("parse status for order %s: %w", record.ID, err)
	}

	lines := make([]pricing.DerivedOrderLine, 0, len(record.Lines))
	for _, lineRecord := range record.Lines {
		line, err := orderLineFromRecord(lineRecord)
		if err != nil {
			return order.Order{}, fmt.Errorf("order %s: %w", record.ID, err)
		}
		lines = append(lines, line)
	}

	return order.Order{
		ID:        record.ID,
		Lines:     lines,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     total,
		CreatedAt: record.CreatedAt,
		Status:    status,
	}, nil
}

func orderLineFromRecord(record OrderLineRecord) (pricing.DerivedOrderLine, error) {
	item, err := ItemFromRecord(record.Item)
	if err != nil {
		return pricing.DerivedOrderLine{}, err
	}
	original, err := decimal.NewFromString(record.OriginalPrice)
	if err != nil {
		return pricing.DerivedOrderLine{}, fmt.Errorf("parse original price for line %s: %w", record.ItemID, err)
	}
	discount, err := decimal.NewFromString(record.DiscountAmount)
	if err != nil {
		return pricing.DerivedOrderLine{}, fmt.Errorf("parse discount for line %s: %w", record.ItemID, err)
	}
	final, err := decimal.NewFromString(record.FinalPrice)
	if err != nil {
		return pricing.DerivedOrderLine{}, fmt.Errorf("parse final price for line %s: %w", record.ItemID, err)
	}
	return pricing.DerivedOrderLine{
		ItemID:         record.ItemID,
		Item:           item,
		Quantity:       record.Quantity,
		OriginalPrice:  original,
		DiscountAmount: discount,
		FinalPrice:     final,
	}, nil
}

// OrdersToSection builds the persisted order log section, oldest
// first.
func OrdersToSection(orders []order.Order, inProgress bool) OrderSection {
	records := make([]OrderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, OrderToRecord(o))
	}
	return OrderSection{SchemaVersion: SchemaVersion, Orders: records, InProgress: inProgress}
}

// OrdersFromSection decodes the persisted order log section.
func OrdersFromSection(section OrderSection) ([]order.Order, error) {
	orders := make([]order.Order, 0, len(section.Orders))
	for _, record := range section.Orders {
		o, err := OrderFromRecord(record)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// FavoritesToSection builds the persisted favorites section.
func FavoritesToSection(marks []favorites.Mark) FavoriteSection {
	records := make([]MarkRecord, 0, len(marks))
	for _, mark := range marks {
		records = append(records, MarkRecord{ItemID: mark.ItemID, MarkedAt: mark.MarkedAt})
	}
	return FavoriteSection{SchemaVersion: SchemaVersion, Marks: records}
}

// FavoritesFromSection decodes the persisted favorites section.
func FavoritesFromSection(section FavoriteSection) []favorites.Mark {
	marks := make([]favorites.Mark, 0, len(section.Marks))
	for _, record := range section.Marks {
		marks = append(marks, favorites.Mark{ItemID: record.ItemID, MarkedAt: record.MarkedAt})
	}
	return marks
}
