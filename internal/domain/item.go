package domain

import (
	"strings"
	"time"
)

// Category is the food category of an inventory item
type Category string

const (
	CategoryFruits        Category = "Fruits"
	CategoryVegetables    Category = "Vegetables"
	CategoryDairy         Category = "Dairy"
	CategoryMeat          Category = "Meat"
	CategoryBakery        Category = "Bakery"
	CategoryGrains        Category = "Grains"
	CategoryBeverages     Category = "Beverages"
	CategoryPreparedFoods Category = "Prepared Foods"
	CategoryFrozenFoods   Category = "Frozen Foods"
	CategoryCannedGoods   Category = "Canned Goods"
)

// Categories lists every category in encoding order
var Categories = []Category{
	CategoryFruits,
	CategoryVegetables,
	CategoryDairy,
	CategoryMeat,
	CategoryBakery,
	CategoryGrains,
	CategoryBeverages,
	CategoryPreparedFoods,
	CategoryFrozenFoods,
	CategoryCannedGoods,
}

// DefaultCategory is used for unknown category strings
const DefaultCategory = CategoryFruits

// CategoryProfile holds the static shelf-life and waste characteristics of a category
type CategoryProfile struct {
	MinShelfLife     int     `json:"min_shelf_life"`
	MaxShelfLife     int     `json:"max_shelf_life"`
	WasteProbability float64 `json:"waste_probability"`
}

var categoryProfiles = map[Category]CategoryProfile{
	CategoryFruits:        {MinShelfLife: 3, MaxShelfLife: 14, WasteProbability: 0.15},
	CategoryVegetables:    {MinShelfLife: 5, MaxShelfLife: 21, WasteProbability: 0.20},
	CategoryDairy:         {MinShelfLife: 7, MaxShelfLife: 14, WasteProbability: 0.10},
	CategoryMeat:          {MinShelfLife: 1, MaxShelfLife: 5, WasteProbability: 0.25},
	CategoryBakery:        {MinShelfLife: 2, MaxShelfLife: 7, WasteProbability: 0.30},
	CategoryGrains:        {MinShelfLife: 30, MaxShelfLife: 365, WasteProbability: 0.05},
	CategoryBeverages:     {MinShelfLife: 30, MaxShelfLife: 365, WasteProbability: 0.08},
	CategoryPreparedFoods: {MinShelfLife: 1, MaxShelfLife: 3, WasteProbability: 0.35},
	CategoryFrozenFoods:   {MinShelfLife: 30, MaxShelfLife: 180, WasteProbability: 0.05},
	CategoryCannedGoods:   {MinShelfLife: 365, MaxShelfLife: 1095, WasteProbability: 0.02},
}

// perishable categories carry a high spoilage risk
var perishable = map[Category]bool{
	CategoryFruits:        true,
	CategoryVegetables:    true,
	CategoryDairy:         true,
	CategoryMeat:          true,
	CategoryBakery:        true,
	CategoryPreparedFoods: true,
}

// ParseCategory resolves a category name, falling back to DefaultCategory.
// The boolean reports whether the name was recognised.
func ParseCategory(s string) (Category, bool) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, true
		}
	}
	return DefaultCategory, false
}

// Profile returns the static profile of the category
func (c Category) Profile() CategoryProfile {
	if p, ok := categoryProfiles[c]; ok {
		return p
	}
	return categoryProfiles[DefaultCategory]
}

// WasteProbability returns the base waste probability of the category
func (c Category) WasteProbability() float64 {
	return c.Profile().WasteProbability
}

// IsPerishable reports whether the category is high-spoilage-risk
func (c Category) IsPerishable() bool {
	return perishable[c]
}

// RestaurantType is the kind of venue holding the inventory
type RestaurantType string

const (
	RestaurantFastFood   RestaurantType = "Fast Food"
	RestaurantFineDining RestaurantType = "Fine Dining"
	RestaurantCafe       RestaurantType = "Cafe"
	RestaurantBuffet     RestaurantType = "Buffet"
	RestaurantFoodTruck  RestaurantType = "Food Truck"
	RestaurantBakery     RestaurantType = "Bakery"
)

// RestaurantTypes lists every restaurant type in encoding order
var RestaurantTypes = []RestaurantType{
	RestaurantFastFood,
	RestaurantFineDining,
	RestaurantCafe,
	RestaurantBuffet,
	RestaurantFoodTruck,
	RestaurantBakery,
}

// DefaultRestaurantType is used for unknown restaurant type strings
const DefaultRestaurantType = RestaurantFastFood

// RestaurantProfile holds the typical order size and waste tendency of a venue type
type RestaurantProfile struct {
	TypicalQuantity int     `json:"typical_quantity"`
	WasteFactor     float64 `json:"waste_factor"`
}

var restaurantProfiles = map[RestaurantType]RestaurantProfile{
	RestaurantFastFood:   {TypicalQuantity: 50, WasteFactor: 0.15},
	RestaurantFineDining: {TypicalQuantity: 20, WasteFactor: 0.25},
	RestaurantCafe:       {TypicalQuantity: 30, WasteFactor: 0.20},
	RestaurantBuffet:     {TypicalQuantity: 100, WasteFactor: 0.30},
	RestaurantFoodTruck:  {TypicalQuantity: 40, WasteFactor: 0.18},
	RestaurantBakery:     {TypicalQuantity: 60, WasteFactor: 0.25},
}

// ParseRestaurantType resolves a restaurant type name, falling back to DefaultRestaurantType
func ParseRestaurantType(s string) (RestaurantType, bool) {
	trimmed := strings.TrimSpace(s)
	for _, r := range RestaurantTypes {
		if strings.EqualFold(string(r), trimmed) {
			return r, true
		}
	}
	return DefaultRestaurantType, false
}

// Profile returns the static profile of the restaurant type
func (r RestaurantType) Profile() RestaurantProfile {
	if p, ok := restaurantProfiles[r]; ok {
		return p
	}
	return restaurantProfiles[DefaultRestaurantType]
}

// Item is a single perishable inventory entry
type Item struct {
	Category       Category       `json:"category"`
	RestaurantType RestaurantType `json:"restaurant_type"`
	Quantity       float64        `json:"quantity"`
	PurchaseDate   time.Time      `json:"purchase_date"`
	ExpiryDate     time.Time      `json:"expiry_date"`
}

// ShelfLife returns the number of days between purchase and expiry
func (i Item) ShelfLife() int {
	return DaysBetween(i.PurchaseDate, i.ExpiryDate)
}

// DaysRemaining returns the number of days between the reference date and expiry
func (i Item) DaysRemaining(reference time.Time) int {
	return DaysBetween(reference, i.ExpiryDate)
}

// Date truncates t to its calendar date in UTC
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole calendar days from a to b (negative when b precedes a)
func DaysBetween(a, b time.Time) int {
	return int((Date(b).Unix() - Date(a).Unix()) / secondsPerDay)
}

// Weekday returns the day of week with Monday as 0 and Sunday as 6
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
