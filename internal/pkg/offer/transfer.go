package offer

import "strings"

// TransferRule picks the point-issuing currency a traveler should transfer
// from. It is a two-bucket heuristic: offers on a primary program or primary
// airline map to PrimarySource, everything else to SecondarySource.
type TransferRule struct {
	PrimarySource   string
	SecondarySource string
	PrimaryPrograms []string
	PrimaryAirlines []string
}

// DefaultTransferRule mirrors the historical deployment.
func DefaultTransferRule() TransferRule {
	return TransferRule{
		PrimarySource:   "chase",
		SecondarySource: "amex",
		PrimaryPrograms: []string{"united"},
		PrimaryAirlines: []string{"UA", "AC", "LH", "NH"},
	}
}

// SourceFor returns the transfer source for an offer.
func (r TransferRule) SourceFor(o Offer) string {
	for _, p := range r.PrimaryPrograms {
		if strings.EqualFold(p, o.Program) {
			return r.PrimarySource
		}
	}

	for _, a := range r.PrimaryAirlines {
		if strings.EqualFold(a, o.Airline) {
			return r.PrimarySource
		}
	}

	return r.SecondarySource
}

// RelevantBalance sums the balances that can pay for the offer: the program's
// own balance plus the balance of its transfer source.
func (r TransferRule) RelevantBalance(o Offer, balances map[string]int64) int64 {
	total := lookupBalance(balances, o.Program)

	source := r.SourceFor(o)
	if !strings.EqualFold(source, o.Program) {
		total += lookupBalance(balances, source)
	}

	return total
}

func lookupBalance(balances map[string]int64, key string) int64 {
	if v, ok := balances[key]; ok {
		return v
	}

	for k, v := range balances {
		if strings.EqualFold(k, key) {
			return v
		}
	}

	return 0
}
