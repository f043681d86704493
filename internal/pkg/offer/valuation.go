package offer

import (
	"fmt"
	"math"
	"strings"
)

// UnmatchedPolicy decides what happens to an award offer with no cash counterpart.
type UnmatchedPolicy string

const (
	// UnmatchedDrop removes award offers that have no cash price.
	UnmatchedDrop UnmatchedPolicy = "drop"
	// UnmatchedSynthesize derives a cash price from taxes: taxes / SynthesizedTaxShare.
	UnmatchedSynthesize UnmatchedPolicy = "synthesize"
)

// SynthesizedTaxShare is the share of a synthesized cash price assumed to be taxes.
const SynthesizedTaxShare = 0.1

// ParseUnmatchedPolicy accepts "drop" or "synthesize".
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch UnmatchedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case UnmatchedDrop, "":
		return UnmatchedDrop, nil
	case UnmatchedSynthesize:
		return UnmatchedSynthesize, nil
	}

	return "", fmt.Errorf("unknown unmatched cash policy %q", s)
}

// CostPerPoint returns the cents of cash value extracted per point. It is zero
// when either price is missing and never negative.
func CostPerPoint(cashPrice *float64, taxesFees float64, pointsUsed int64) float64 {
	if cashPrice == nil || *cashPrice == 0 || pointsUsed <= 0 {
		return 0
	}

	return math.Max(0, (*cashPrice-taxesFees)/float64(pointsUsed)*100)
}

// Valuator turns matched offers into comparable, party-wide priced offers.
type Valuator struct {
	// TaxCapRatio caps taxes at this share of the cash price. Zero disables the cap.
	TaxCapRatio float64
	Policy      UnmatchedPolicy
}

// Value prices a single offer for the whole party. ok is false when the offer
// has no cash price and the policy drops it.
func (v Valuator) Value(o Offer, partySize int, roundTrip bool) (Offer, bool) {
	if partySize < 1 {
		partySize = 1
	}

	taxes := (o.TaxesFees + o.ReturnTaxes) * float64(partySize)

	if o.CashPrice == nil {
		if v.Policy != UnmatchedSynthesize {
			return Offer{}, false
		}
		o.CashPrice = Price(taxes / SynthesizedTaxShare)
	}

	if v.TaxCapRatio > 0 {
		taxes = math.Min(taxes, *o.CashPrice*v.TaxCapRatio)
	}

	multiplier := int64(1)
	if roundTrip {
		multiplier = 2
	}

	o.TaxesFees = taxes
	o.ReturnTaxes = 0
	o.PointsUsed = int64(partySize) * o.PointsUsed * multiplier
	o.CPP = CostPerPoint(o.CashPrice, o.TaxesFees, o.PointsUsed)

	return o, true
}

// ValueAll prices every offer, dropping those the policy rejects.
func (v Valuator) ValueAll(offers []Offer, partySize int, roundTrip bool) []Offer {
	results := make([]Offer, 0, len(offers))

	for _, o := range offers {
		valued, ok := v.Value(o, partySize, roundTrip)
		if !ok {
			continue
		}
		results = append(results, valued)
	}

	return results
}
