package domain

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input     string
		want      Category
		wantKnown bool
	}{
		{"Dairy", CategoryDairy, true},
		{"prepared foods", CategoryPreparedFoods, true},
		{"  Canned Goods ", CategoryCannedGoods, true},
		{"Spaceship Fuel", CategoryFruits, false},
		{"", CategoryFruits, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := ParseCategory(tt.input)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestParseRestaurantType(t *testing.T) {
	if got, known := ParseRestaurantType("fine dining"); got != RestaurantFineDining || !known {
		t.Errorf("ParseRestaurantType(fine dining) = (%q, %v)", got, known)
	}
	if got, known := ParseRestaurantType("Moon Base"); got != RestaurantFastFood || known {
		t.Errorf("ParseRestaurantType(Moon Base) = (%q, %v), want fallback to Fast Food", got, known)
	}
}

func TestProfiles(t *testing.T) {
	if len(categoryProfiles) != len(Categories) {
		t.Fatalf("categoryProfiles has %d entries, want %d", len(categoryProfiles), len(Categories))
	}
	if len(restaurantProfiles) != len(RestaurantTypes) {
		t.Fatalf("restaurantProfiles has %d entries, want %d", len(restaurantProfiles), len(RestaurantTypes))
	}

	for _, c := range Categories {
		p := c.Profile()
		if p.MinShelfLife > p.MaxShelfLife {
			t.Errorf("%s: min shelf life %d exceeds max %d", c, p.MinShelfLife, p.MaxShelfLife)
		}
		if p.WasteProbability <= 0 || p.WasteProbability >= 1 {
			t.Errorf("%s: waste probability %v out of (0,1)", c, p.WasteProbability)
		}
	}

	if got := CategoryCannedGoods.WasteProbability(); got != 0.02 {
		t.Errorf("Canned Goods waste probability = %v, want 0.02", got)
	}
	if got := RestaurantBuffet.Profile(); got.TypicalQuantity != 100 || got.WasteFactor != 0.30 {
		t.Errorf("Buffet profile = %+v", got)
	}
	if got := Category("unknown").Profile(); got != CategoryFruits.Profile() {
		t.Errorf("unknown category profile = %+v, want Fruits profile", got)
	}
}

func TestIsPerishable(t *testing.T) {
	perishables := map[Category]bool{
		CategoryFruits:        true,
		CategoryVegetables:    true,
		CategoryDairy:         true,
		CategoryMeat:          true,
		CategoryBakery:        true,
		CategoryPreparedFoods: true,
	}
	for _, c := range Categories {
		if c.IsPerishable() != perishables[c] {
			t.Errorf("%s.IsPerishable() = %v, want %v", c, c.IsPerishable(), perishables[c])
		}
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{"same day ignores clock", time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC), 0},
		{"next day just after midnight", time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC), 1},
		{"past date", time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC), -3},
		{"across a month", time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), 30},
		{"beyond duration range", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), 2912739},
		{"far past", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), -739319},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestItemDerivedDays(t *testing.T) {
	item := Item{
		Category:     CategoryDairy,
		PurchaseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
	}

	if got := item.ShelfLife(); got != 10 {
		t.Errorf("ShelfLife() = %d, want 10", got)
	}
	if got := item.DaysRemaining(time.Date(2025, 1, 8, 15, 0, 0, 0, time.UTC)); got != 3 {
		t.Errorf("DaysRemaining() = %d, want 3", got)
	}
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		if got := Weekday(monday.AddDate(0, 0, offset)); got != offset {
			t.Errorf("Weekday(monday+%d) = %d, want %d", offset, got, offset)
		}
	}
}
