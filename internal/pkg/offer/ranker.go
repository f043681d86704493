package offer

import "sort"

// DefaultLimit is the number of points recommendations surfaced when no limit is configured.
const DefaultLimit = 5

// PaymentType tells the traveler how to book a recommendation.
type PaymentType string

const (
	PaymentPoints PaymentType = "points"
	PaymentCash   PaymentType = "cash"
)

// Recommendation is a ranked offer ready to be surfaced.
type Recommendation struct {
	Offer
	TransferFrom string
	PaymentType  PaymentType
}

// Ranker selects the best points offers by cost-per-point.
type Ranker struct {
	Limit    int
	Transfer TransferRule
}

// Rank keeps priced offers the traveler can afford, sorts them by descending
// cpp and returns at most Limit of them.
func (r Ranker) Rank(offers []Offer, balances map[string]int64) []Recommendation {
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if !o.HasCashPrice() || o.PointsUsed <= 0 {
			continue
		}

		if o.PointsUsed > r.Transfer.RelevantBalance(o, balances) {
			continue
		}

		candidates = append(candidates, o)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CPP > candidates[j].CPP
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]Recommendation, len(candidates))
	for i, o := range candidates {
		results[i] = Recommendation{
			Offer:        o,
			TransferFrom: r.Transfer.SourceFor(o),
			PaymentType:  PaymentPoints,
		}
	}

	return results
}

// CheapestCash returns the lowest priced cash offer, honoring the nonstop
// preference when it is set.
func CheapestCash(cash []Offer, nonstop *bool) (Offer, bool) {
	var (
		best  Offer
		found bool
	)

	for _, c := range cash {
		if !c.HasCashPrice() {
			continue
		}

		if nonstop != nil && c.Nonstop != *nonstop {
			continue
		}

		if !found || *c.CashPrice < *best.CashPrice {
			best = c
			found = true
		}
	}

	return best, found
}

// Recommend ranks the points offers and falls back to the single cheapest cash
// offer when none qualifies. An empty result means nothing qualified at all.
func (r Ranker) Recommend(points []Offer, cash []Offer, balances map[string]int64,
	nonstop *bool,
) []Recommendation {
	ranked := r.Rank(points, balances)
	if len(ranked) > 0 {
		return ranked
	}

	cheapest, ok := CheapestCash(cash, nonstop)
	if !ok {
		return []Recommendation{}
	}

	cheapest.Kind = KindCash
	cheapest.PointsUsed = 0
	cheapest.TaxesFees = 0
	cheapest.CPP = 0

	return []Recommendation{{
		Offer:       cheapest,
		PaymentType: PaymentCash,
	}}
}
