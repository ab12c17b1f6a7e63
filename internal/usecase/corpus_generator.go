package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sharebite/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// purchaseWindowDays bounds how far before the simulation date purchases are drawn
const purchaseWindowDays = 365

// CorpusGenerator produces the synthetic training corpus
type CorpusGenerator struct {
	builder *FeatureBuilder
	workers int
}

// NewCorpusGenerator creates a generator that builds features with builder
func NewCorpusGenerator(builder *FeatureBuilder, workers int) *CorpusGenerator {
	if workers < 1 {
		workers = 1
	}
	return &CorpusGenerator{builder: builder, workers: workers}
}

// Generate builds n rows. Row i draws from its own source seeded with seed+i, so
// the corpus is identical for any worker count.
func (g *CorpusGenerator) Generate(ctx context.Context, n int, seed uint64, simulationDate time.Time) ([]domain.CorpusRow, error) {
	if n <= 0 {
		return nil, domain.ErrEmptyCorpus
	}

	rows := make([]domain.CorpusRow, n)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < g.workers; w++ {
		offset := w
		eg.Go(func() error {
			for i := offset; i < n; i += g.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				rows[i] = g.Row(i, seed, simulationDate)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generate corpus: %w", err)
	}
	return rows, nil
}

// Row generates the corpus row at index deterministically
func (g *CorpusGenerator) Row(index int, seed uint64, simulationDate time.Time) domain.CorpusRow {
	rowSeed := seed + uint64(index)
	rng := rand.New(rand.NewPCG(rowSeed, rowSeed^0x9e3779b97f4a7c15))
	simulationDate = domain.Date(simulationDate)

	purchase := simulationDate.AddDate(0, 0, -rng.IntN(purchaseWindowDays+1))
	category := domain.Categories[rng.IntN(len(domain.Categories))]
	restaurantType := domain.RestaurantTypes[rng.IntN(len(domain.RestaurantTypes))]

	profile := category.Profile()
	shelfLife := profile.MinShelfLife + rng.IntN(profile.MaxShelfLife-profile.MinShelfLife+1)
	expiry := purchase.AddDate(0, 0, shelfLife)
	quantity := sampleQuantity(rng, restaurantType.Profile().TypicalQuantity)

	daysRemaining := domain.DaysBetween(simulationDate, expiry)

	labels := GenerateLabels(domain.LabelInput{
		Category:        category,
		RestaurantType:  restaurantType,
		Quantity:        quantity,
		ShelfLife:       shelfLife,
		DaysUntilExpiry: shelfLife,
		DaysRemaining:   daysRemaining,
	}, rng)

	return domain.CorpusRow{
		ID:    RowID(seed, index).String(),
		Index: index,
		Item: domain.Item{
			Category:       category,
			RestaurantType: restaurantType,
			Quantity:       quantity,
			PurchaseDate:   purchase,
			ExpiryDate:     expiry,
		},
		ShelfLife:                 shelfLife,
		DaysUntilExpiry:           shelfLife,
		DaysRemaining:             daysRemaining,
		EffectiveWasteProbability: EffectiveWasteProbability(category, restaurantType),
		Features:                  g.builder.Build(category, restaurantType, quantity, daysRemaining, shelfLife, purchase),
		Labels:                    labels,
	}
}

// RowID derives a stable identifier for a corpus row
func RowID(seed uint64, index int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("sharebite-corpus/%d/%d", seed, index)))
}

// sampleQuantity draws a whole quantity around the venue's typical size, at least 1
func sampleQuantity(rng domain.RandomSource, typical int) float64 {
	mean := float64(typical)
	q := math.Trunc(mean + rng.NormFloat64()*mean*0.3)
	return math.Max(1, q)
}
