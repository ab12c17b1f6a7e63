package corpus

import (
	"strconv"
	"time"

	"github.com/sharebite/backend/internal/domain"
)

var itemColumns = []string{
	"id",
	"row_index",
	"category",
	"restaurant_type",
	"purchase_date",
	"expiry_date",
	"days_until_expiry",
	"effective_waste_probability",
}

var labelColumns = []string{
	"final_status",
	"was_donated",
	"waste_risk",
	"priority_score",
	"should_donate",
	"will_expire",
	"status",
}

// Columns is the persisted corpus schema: item attributes, features, then labels
var Columns = func() []string {
	cols := append([]string(nil), itemColumns...)
	cols = append(cols, domain.FeatureColumns...)
	return append(cols, labelColumns...)
}()

// record returns the row's values in Columns order as native Go types
func record(row domain.CorpusRow) []any {
	values := []any{
		row.ID,
		int64(row.Index),
		string(row.Item.Category),
		string(row.Item.RestaurantType),
		row.Item.PurchaseDate,
		row.Item.ExpiryDate,
		int64(row.DaysUntilExpiry),
		row.EffectiveWasteProbability,
	}
	for _, v := range row.Features.Values() {
		values = append(values, v)
	}
	return append(values,
		string(row.Labels.FinalStatus),
		row.Labels.WasDonated,
		row.Labels.WasteRisk,
		row.Labels.PriorityScore,
		row.Labels.ShouldDonate,
		row.Labels.WillExpire,
		string(row.Labels.Status),
	)
}

// stringRecord renders record for text formats
func stringRecord(row domain.CorpusRow) []string {
	values := record(row)
	out := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case string:
			out[i] = x
		case int64:
			out[i] = strconv.FormatInt(x, 10)
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			if x {
				out[i] = "1"
			} else {
				out[i] = "0"
			}
		case time.Time:
			out[i] = x.Format("2006-01-02")
		}
	}
	return out
}
