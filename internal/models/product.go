package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product row.
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"type:varchar(255);not null"`
	Description      *string         `json:"description" gorm:"type:text"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image            *string         `json:"image" gorm:"type:text"`
	AvailabilityDate *string         `json:"availability_date" gorm:"type:varchar(10)"`
	InStock          bool            `json:"in_stock" gorm:"not null;default:false"`
}

// TableName overrides the table name used by GORM.
func (Product) TableName() string {
	return "products"
}

// ProductInput is the JSON body accepted by the create and update actions.
// The admin client submits price as a string and in_stock as 0/1, while other
// callers may send plain JSON numbers and booleans; NumberString and BoolBit
// accept both encodings.
type ProductInput struct {
	ID               uint         `json:"id"`
	Name             string       `json:"name" validate:"notblank"`
	Description      string       `json:"description"`
	Price            NumberString `json:"price" validate:"required,amount"`
	Image            string       `json:"image" validate:"omitempty,url"`
	AvailabilityDate string       `json:"availability_date" validate:"omitempty,datetime=2006-01-02"`
	InStock          BoolBit      `json:"in_stock"`
}

// ToProduct converts a validated input into a Product. Empty optional fields
// become NULL columns. Price must already have passed the amount rule.
func (in *ProductInput) ToProduct() *Product {
	price, _ := decimal.NewFromString(string(in.Price))
	product := &Product{
		ID:      in.ID,
		Name:    in.Name,
		Price:   price,
		InStock: bool(in.InStock),
	}
	if in.Description != "" {
		product.Description = &in.Description
	}
	if in.Image != "" {
		product.Image = &in.Image
	}
	if in.AvailabilityDate != "" {
		product.AvailabilityDate = &in.AvailabilityDate
	}
	return product
}

// NumberString holds a numeric JSON value that may arrive quoted or bare.
type NumberString string

func (n *NumberString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	*n = NumberString(data)
	return nil
}

// BoolBit holds a flag that may arrive as a JSON boolean or as 0/1.
type BoolBit bool

func (b *BoolBit) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", `"1"`:
		*b = true
	case "false", "0", `"0"`, `""`, "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value: %s", data)
	}
	return nil
}
