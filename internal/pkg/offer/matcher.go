package offer

// Merge joins an award offer with its cash counterpart.
//
// Field provenance: route, airline, program, cabin, nonstop, points, taxes and
// seats always come from the award side. Times, flight number, duration and
// cash price come from the cash side. Dates come from the award side so a
// round-trip return date is the date the return award was found on.
func Merge(award, cash Offer) Offer {
	merged := award
	merged.Kind = KindMatched
	merged.FlightNumber = cash.FlightNumber
	merged.DepartureTime = orNotAvailable(cash.DepartureTime)
	merged.ArrivalTime = orNotAvailable(cash.ArrivalTime)
	merged.DurationMinutes = cash.DurationMinutes

	if cash.CashPrice != nil {
		merged.CashPrice = Price(*cash.CashPrice)
	}

	if award.IsRoundTrip() {
		merged.ReturnDepartureTime = orNotAvailable(cash.ReturnDepartureTime)
		merged.ReturnArrivalTime = orNotAvailable(cash.ReturnArrivalTime)
	}

	return merged
}

// placeholder is an award offer with no cash counterpart.
func placeholder(award Offer) Offer {
	award.Kind = KindAward
	award.CashPrice = nil
	award.DepartureTime = NotAvailable
	award.ArrivalTime = NotAvailable
	if award.IsRoundTrip() {
		award.ReturnDepartureTime = NotAvailable
		award.ReturnArrivalTime = NotAvailable
	}

	return award
}

// MatchCash returns the first cash offer with the same airline, departure
// date and nonstop flag as the award offer. Airline comparison is on the raw
// key, so a multi-carrier key like "AA,BA" never matches "AA".
func MatchCash(award Offer, cash []Offer) (Offer, bool) {
	for _, c := range cash {
		if c.Airline == award.Airline &&
			c.DepartureDate == award.DepartureDate &&
			c.Nonstop == award.Nonstop {
			return c, true
		}
	}

	return Offer{}, false
}

// MatchOneWay attaches a cash price to every award offer. Award offers with no
// counterpart are kept as price-less placeholders; the valuation policy
// decides what happens to them.
func MatchOneWay(awards []Offer, cash []Offer) []Offer {
	results := make([]Offer, 0, len(awards))

	for _, award := range awards {
		c, ok := MatchCash(award, cash)
		if !ok {
			results = append(results, placeholder(award))
			continue
		}

		results = append(results, Merge(award, c))
	}

	return results
}

// MatchRoundTrip pairs every outbound award offer with a return award offer of
// the same airline, program, cabin and nonstop flag departing on returnDate.
// Outbound offers without such a return are dropped. The paired offer is then
// priced against a round-trip cash offer whose outbound matches the outbound
// leg and whose return date matches the return leg.
func MatchRoundTrip(outbound []Offer, returns []Offer, cash []Offer, returnDate string) []Offer {
	results := make([]Offer, 0, len(outbound))

	for _, out := range outbound {
		ret, ok := findReturn(out, returns, returnDate)
		if !ok {
			continue
		}

		paired := out
		paired.ReturnDate = ret.DepartureDate
		paired.ReturnTaxes = ret.TaxesFees
		if ret.SeatsAvailable < paired.SeatsAvailable {
			paired.SeatsAvailable = ret.SeatsAvailable
		}

		c, ok := matchRoundTripCash(paired, cash)
		if !ok {
			results = append(results, placeholder(paired))
			continue
		}

		results = append(results, Merge(paired, c))
	}

	return results
}

func findReturn(out Offer, returns []Offer, returnDate string) (Offer, bool) {
	for _, ret := range returns {
		if ret.Airline == out.Airline &&
			ret.Program == out.Program &&
			ret.Cabin == out.Cabin &&
			ret.Nonstop == out.Nonstop &&
			ret.DepartureDate == returnDate {
			return ret, true
		}
	}

	return Offer{}, false
}

func matchRoundTripCash(paired Offer, cash []Offer) (Offer, bool) {
	for _, c := range cash {
		if c.Airline == paired.Airline &&
			c.DepartureDate == paired.DepartureDate &&
			c.Nonstop == paired.Nonstop &&
			c.ReturnDate == paired.ReturnDate {
			return c, true
		}
	}

	return Offer{}, false
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}
