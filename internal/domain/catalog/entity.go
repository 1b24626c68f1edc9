// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItem     = errors.New("catalog: invalid item")
	ErrInvalidCategory = errors.New("catalog: invalid category")
)

// Category is the closed set of menu sections.
type Category string

const (
	CategoryMorningFood Category = "morning_food"
	CategoryLunch       Category = "lunch"
	CategorySnacks      Category = "snacks"
	CategoryChocolate   Category = "chocolate"
	CategoryDrink       Category = "drink"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryMorningFood,
		CategoryLunch,
		CategorySnacks,
		CategoryChocolate,
		CategoryDrink,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMorningFood, CategoryLunch, CategorySnacks, CategoryChocolate, CategoryDrink:
		return true
	default:
		return false
	}
}

// Label is the human form ("morning food").
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// ParseCategory accepts the stored value, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Item is a catalog entry. The core never mutates it.
type Item struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Image    string          `json:"image"`
	Category Category        `json:"category" validate:"required,category"`
}

// NewItem normalizes and validates a catalog entry.
func NewItem(id, name string, price decimal.Decimal, image string, category Category) (Item, error) {
	it := Item{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Price:    price,
		Image:    strings.TrimSpace(image),
		Category: category,
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (it Item) Validate() error {
	if err := Validate(it); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}
