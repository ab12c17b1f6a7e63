package domain

import "time"

// FinalStatus is the eventual fate of a corpus item
type FinalStatus string

const (
	StatusConsumed FinalStatus = "consumed"
	StatusExpired  FinalStatus = "expired"
	StatusDonated  FinalStatus = "donated"
)

// ShelfStatus describes an item's state at purchase time
type ShelfStatus string

const (
	ShelfActive       ShelfStatus = "active"
	ShelfExpiringSoon ShelfStatus = "expiring_soon"
	ShelfExpired      ShelfStatus = "expired"
)

// Labels are the ground-truth training targets for one corpus item
type Labels struct {
	FinalStatus   FinalStatus `json:"final_status"`
	WasDonated    bool        `json:"was_donated"`
	WasteRisk     float64     `json:"waste_risk"`
	PriorityScore float64     `json:"priority_score"`
	ShouldDonate  bool        `json:"should_donate"`
	WillExpire    bool        `json:"will_expire"`
	Status        ShelfStatus `json:"status"`
}

// LabelInput carries the item attributes the label rules read.
// DaysUntilExpiry is measured from purchase, DaysRemaining from the simulation date.
type LabelInput struct {
	Category        Category
	RestaurantType  RestaurantType
	Quantity        float64
	ShelfLife       int
	DaysUntilExpiry int
	DaysRemaining   int
}

// CorpusRow is one persisted training example
type CorpusRow struct {
	ID                        string        `json:"id"`
	Index                     int           `json:"index"`
	Item                      Item          `json:"item"`
	ShelfLife                 int           `json:"shelf_life"`
	DaysUntilExpiry           int           `json:"days_until_expiry"`
	DaysRemaining             int           `json:"days_remaining"`
	EffectiveWasteProbability float64       `json:"effective_waste_probability"`
	Features                  FeatureVector `json:"features"`
	Labels                    Labels        `json:"labels"`
}

// ModelMetadata describes the schema a set of trained predictors expects
type ModelMetadata struct {
	FeatureColumns []string  `json:"feature_columns"`
	Encoding       Encoding  `json:"encoding"`
	TrainedAt      time.Time `json:"trained_at"`
	Samples        int       `json:"samples"`
	Seed           uint64    `json:"seed"`
}
