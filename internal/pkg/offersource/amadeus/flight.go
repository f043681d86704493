package amadeus

type FlightOffersResponse struct {
	Meta Meta          `json:"meta"`
	Data []FlightOffer `json:"data"`
}

type Meta struct {
	Count int `json:"count"`
}

type FlightOffer struct {
	ID                     string      `json:"id"`
	Source                 string      `json:"source"`
	OneWay                 bool        `json:"oneWay"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

// Itinerary is one direction of the offer; the first is outbound, the second
// (round trips only) is the return.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure     FlightEndpoint `json:"departure"`
	Arrival       FlightEndpoint `json:"arrival"`
	CarrierCode   string         `json:"carrierCode"`
	Number        string         `json:"number"`
	Duration      string         `json:"duration"`
	NumberOfStops int            `json:"numberOfStops"`
}

// FlightEndpoint carries a local timestamp without offset, e.g. "2026-11-01T19:30:00".
type FlightEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}
