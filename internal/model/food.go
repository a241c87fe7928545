package model

import (
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// DietaryInfo flags a food item's dietary properties.
type DietaryInfo struct {
	IsVegetarian bool `json:"is_vegetarian"`
	IsGlutenFree bool `json:"is_gluten_free"`
	IsVegan      bool `json:"is_vegan"`
}

// SpecialOffer describes a running promotion on a food item.
type SpecialOffer struct {
	IsOnOffer          bool     `json:"is_on_offer"`
	OfferDescription   string   `json:"offer_description,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// Food is a catalog item.
type Food struct {
	ID           string       `json:"id"`
	FID          string       `json:"fid"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	Image        string       `json:"image"`
	Category     string       `json:"category"`
	Ingredients  []string     `json:"ingredients"`
	DietaryInfo  DietaryInfo  `json:"dietary_info"`
	SpecialOffer SpecialOffer `json:"special_offer"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (f *Food) SeqKind() seqid.Kind { return seqid.Food }
func (f *Food) IsNew() bool         { return f.ID == "" }
func (f *Food) SetSeqID(id string)  { f.FID = id }
func (f *Food) SetID(id string)     { f.ID = id }

// Validate checks required fields and price/discount ranges.
func (f *Food) Validate() error {
	for _, fv := range []struct{ field, value string }{
		{"name", f.Name},
		{"description", f.Description},
		{"image", f.Image},
		{"category", f.Category},
	} {
		if err := required(fv.field, fv.value); err != nil {
			return err
		}
	}
	if f.Price <= 0 {
		return invalidf("price must be positive")
	}
	if len(f.Ingredients) == 0 {
		return invalidf("ingredients are required")
	}
	if d := f.SpecialOffer.DiscountPercentage; d != nil && (*d < 0 || *d > 100) {
		return invalidf("discount_percentage must be between 0 and 100")
	}
	return nil
}

// EffectivePrice is the unit price after any active discount.
func (f *Food) EffectivePrice() float64 {
	if !f.SpecialOffer.IsOnOffer || f.SpecialOffer.DiscountPercentage == nil {
		return f.Price
	}
	return f.Price * (100 - *f.SpecialOffer.DiscountPercentage) / 100
}
