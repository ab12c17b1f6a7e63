package domain

import "fmt"

// FeatureVector is the fixed-schema model input derived from an Item.
// Field order matches FeatureColumns.
type FeatureVector struct {
	CategoryEncoded               float64 `json:"category_encoded"`
	RestaurantTypeEncoded         float64 `json:"restaurant_type_encoded"`
	Quantity                      float64 `json:"quantity"`
	DaysRemaining                 float64 `json:"days_remaining"`
	ShelfLife                     float64 `json:"shelf_life"`
	Month                         float64 `json:"month"`
	DayOfWeek                     float64 `json:"day_of_week"`
	IsWeekend                     float64 `json:"is_weekend"`
	WasteProbability              float64 `json:"waste_probability"`
	QuantityExpiryInteraction     float64 `json:"quantity_expiry_interaction"`
	CategoryWasteInteraction      float64 `json:"category_waste_interaction"`
	IsPerishable                  float64 `json:"is_perishable"`
	HighQuantity                  float64 `json:"high_quantity"`
	VeryHighQuantity              float64 `json:"very_high_quantity"`
	QuantityPerishableInteraction float64 `json:"quantity_perishable_interaction"`
	IsExpired                     float64 `json:"is_expired"`
	ExpiringToday                 float64 `json:"expiring_today"`
	ExpiringSoon                  float64 `json:"expiring_soon"`
}

// FeatureColumns is the canonical column order of FeatureVector
var FeatureColumns = []string{
	"category_encoded",
	"restaurant_type_encoded",
	"quantity",
	"days_remaining",
	"shelf_life",
	"month",
	"day_of_week",
	"is_weekend",
	"waste_probability",
	"quantity_expiry_interaction",
	"category_waste_interaction",
	"is_perishable",
	"high_quantity",
	"very_high_quantity",
	"quantity_perishable_interaction",
	"is_expired",
	"expiring_today",
	"expiring_soon",
}

// Values returns the vector in FeatureColumns order
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.CategoryEncoded,
		f.RestaurantTypeEncoded,
		f.Quantity,
		f.DaysRemaining,
		f.ShelfLife,
		f.Month,
		f.DayOfWeek,
		f.IsWeekend,
		f.WasteProbability,
		f.QuantityExpiryInteraction,
		f.CategoryWasteInteraction,
		f.IsPerishable,
		f.HighQuantity,
		f.VeryHighQuantity,
		f.QuantityPerishableInteraction,
		f.IsExpired,
		f.ExpiringToday,
		f.ExpiringSoon,
	}
}

// Map returns the vector keyed by column name
func (f FeatureVector) Map() map[string]float64 {
	values := f.Values()
	m := make(map[string]float64, len(values))
	for i, col := range FeatureColumns {
		m[col] = values[i]
	}
	return m
}

// CheckColumns verifies that columns match FeatureColumns exactly, in order
func CheckColumns(columns []string) error {
	if len(columns) != len(FeatureColumns) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrSchemaMismatch, len(columns), len(FeatureColumns))
	}
	for i, col := range columns {
		if col != FeatureColumns[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i, col, FeatureColumns[i])
		}
	}
	return nil
}

// Encoding maps categorical values to the integer codes used in feature vectors
type Encoding struct {
	Categories      map[Category]int       `json:"category_mapping"`
	RestaurantTypes map[RestaurantType]int `json:"restaurant_type_mapping"`
}

// DefaultEncoding numbers categories and restaurant types in declaration order
func DefaultEncoding() Encoding {
	enc := Encoding{
		Categories:      make(map[Category]int, len(Categories)),
		RestaurantTypes: make(map[RestaurantType]int, len(RestaurantTypes)),
	}
	for i, c := range Categories {
		enc.Categories[c] = i
	}
	for i, r := range RestaurantTypes {
		enc.RestaurantTypes[r] = i
	}
	return enc
}

// CategoryCode returns the code for c, or the default category's code when c is unmapped
func (e Encoding) CategoryCode(c Category) int {
	if code, ok := e.Categories[c]; ok {
		return code
	}
	return e.Categories[DefaultCategory]
}

// RestaurantTypeCode returns the code for r, or the default restaurant type's code when r is unmapped
func (e Encoding) RestaurantTypeCode(r RestaurantType) int {
	if code, ok := e.RestaurantTypes[r]; ok {
		return code
	}
	return e.RestaurantTypes[DefaultRestaurantType]
}

// Validate checks that every known value has a distinct code
func (e Encoding) Validate() error {
	seen := make(map[int]Category, len(e.Categories))
	for _, c := range Categories {
		code, ok := e.Categories[c]
		if !ok {
			return fmt.Errorf("%w: category %q has no code", ErrSchemaMismatch, c)
		}
		if other, dup := seen[code]; dup {
			return fmt.Errorf("%w: categories %q and %q share code %d", ErrSchemaMismatch, other, c, code)
		}
		seen[code] = c
	}
	seenRT := make(map[int]RestaurantType, len(e.RestaurantTypes))
	for _, r := range RestaurantTypes {
		code, ok := e.RestaurantTypes[r]
		if !ok {
			return fmt.Errorf("%w: restaurant type %q has no code", ErrSchemaMismatch, r)
		}
		if other, dup := seenRT[code]; dup {
			return fmt.Errorf("%w: restaurant types %q and %q share code %d", ErrSchemaMismatch, other, r, code)
		}
		seenRT[code] = r
	}
	return nil
}
