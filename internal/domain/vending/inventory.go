package vending

import (
	"sort"
	"strings"
)

// Product is a sellable item identified by its name
type Product struct {
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

// NewProduct creates a product after validating its name and price
func NewProduct(name string, price Amount) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, ErrEmptyProductName
	}
	if price < 0 {
		return Product{}, ErrInvalidPrice
	}
	return Product{Name: name, Price: price}, nil
}

// StockLevel is a read-only view of one inventory slot
type StockLevel struct {
	Product Product `json:"product"`
	Stock   int     `json:"stock"`
}

type slot struct {
	product Product
	stock   int
}

// Inventory tracks price and remaining stock per product.
// It is not safe for concurrent use; the owning Machine serializes access.
type Inventory struct {
	slots map[string]*slot
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{slots: make(map[string]*slot)}
}

// Load adds quantity units of product. Loading an existing product replaces
// its price and increases its stock.
func (inv *Inventory) Load(product Product, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	s, exists := inv.slots[product.Name]
	if !exists {
		inv.slots[product.Name] = &slot{product: product, stock: quantity}
		return nil
	}

	s.product = product
	s.stock += quantity
	return nil
}

// Peek returns the price and stock of a product without changing anything
func (inv *Inventory) Peek(name string) (Amount, int, error) {
	s, exists := inv.slots[name]
	if !exists {
		return 0, 0, ErrUnknownProduct{Name: name}
	}
	return s.product.Price, s.stock, nil
}

// ReserveOne takes a single unit out of stock. Stock is only mutated on success.
func (inv *Inventory) ReserveOne(name string) error {
	s, exists := inv.slots[name]
	if !exists {
		return ErrUnknownProduct{Name: name}
	}
	if s.stock <= 0 {
		return ErrOutOfStock{Name: name}
	}

	s.stock--
	return nil
}

// Snapshot lists every slot ordered by product name
func (inv *Inventory) Snapshot() []StockLevel {
	levels := make([]StockLevel, 0, len(inv.slots))
	for _, s := range inv.slots {
		levels = append(levels, StockLevel{Product: s.product, Stock: s.stock})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Product.Name < levels[j].Product.Name })
	return levels
}
