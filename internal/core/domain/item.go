package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	ItemNameMinLen        = 2
	ItemNameMaxLen        = 50
	ItemDescriptionMinLen = 3
	ItemDescriptionMaxLen = 500
	ItemPriceMax          = 100_000_000
	ItemStockMax          = 10_000
)

// Item is a catalog entry with price and stock.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// Validate checks the field ranges of a complete item.
func (i *Item) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	if i.Description != nil {
		if err := validateDescription(*i.Description); err != nil {
			return err
		}
	}
	if err := validatePrice(i.Price); err != nil {
		return err
	}
	return validateStock(i.Stock)
}

// ItemUpdate carries the fields of a partial item update. Nil fields are left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// IsEmpty reports whether the update would change nothing.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil
}

// Validate checks the ranges of the supplied fields only.
func (u ItemUpdate) Validate() error {
	if u.Name != nil {
		if err := validateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Price != nil {
		if err := validatePrice(*u.Price); err != nil {
			return err
		}
	}
	if u.Stock != nil {
		return validateStock(*u.Stock)
	}
	return nil
}

// Apply copies the supplied fields onto item.
func (u ItemUpdate) Apply(item *Item) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Description != nil {
		d := *u.Description
		item.Description = &d
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.Stock != nil {
		item.Stock = *u.Stock
	}
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < ItemNameMinLen || n > ItemNameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrValidation, ItemNameMinLen, ItemNameMaxLen)
	}
	return nil
}

func validateDescription(desc string) error {
	n := utf8.RuneCountInString(desc)
	if n < ItemDescriptionMinLen || n > ItemDescriptionMaxLen {
		return fmt.Errorf("%w: description must be between %d and %d characters", ErrValidation, ItemDescriptionMinLen, ItemDescriptionMaxLen)
	}
	return nil
}

func validatePrice(price float64) error {
	// NaN fails both comparisons, so test for the valid range instead.
	if !(price >= 0 && price <= ItemPriceMax) {
		return fmt.Errorf("%w: price must be between 0 and %d", ErrValidation, ItemPriceMax)
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 || stock > ItemStockMax {
		return fmt.Errorf("%w: stock must be between 0 and %d", ErrValidation, ItemStockMax)
	}
	return nil
}
