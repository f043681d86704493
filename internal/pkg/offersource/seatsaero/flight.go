package seatsaero

type SearchResponse struct {
	Data    []Availability `json:"data"`
	Count   int            `json:"count"`
	HasMore bool           `json:"hasMore"`
	Cursor  int64          `json:"cursor"`
}

type Route struct {
	ID                 string `json:"ID"`
	OriginAirport      string `json:"OriginAirport"`
	DestinationAirport string `json:"DestinationAirport"`
	Source             string `json:"Source"`
}

// Availability is one cached availability row. Every cabin has its own set of
// columns, prefixed Y (economy), W (premium economy), J (business) and F (first).
type Availability struct {
	ID    string `json:"ID"`
	Route Route  `json:"Route"`
	Date  string `json:"Date"`

	YAvailable bool `json:"YAvailable"`
	WAvailable bool `json:"WAvailable"`
	JAvailable bool `json:"JAvailable"`
	FAvailable bool `json:"FAvailable"`

	YMileageCostRaw int64 `json:"YMileageCostRaw"`
	WMileageCostRaw int64 `json:"WMileageCostRaw"`
	JMileageCostRaw int64 `json:"JMileageCostRaw"`
	FMileageCostRaw int64 `json:"FMileageCostRaw"`

	// taxes are in minor units of the taxes currency
	YTotalTaxes int64 `json:"YTotalTaxes"`
	WTotalTaxes int64 `json:"WTotalTaxes"`
	JTotalTaxes int64 `json:"JTotalTaxes"`
	FTotalTaxes int64 `json:"FTotalTaxes"`

	YTaxesCurrency string `json:"YTaxesCurrency"`
	WTaxesCurrency string `json:"WTaxesCurrency"`
	JTaxesCurrency string `json:"JTaxesCurrency"`
	FTaxesCurrency string `json:"FTaxesCurrency"`

	YDirect bool `json:"YDirect"`
	WDirect bool `json:"WDirect"`
	JDirect bool `json:"JDirect"`
	FDirect bool `json:"FDirect"`

	YAirlines string `json:"YAirlines"`
	WAirlines string `json:"WAirlines"`
	JAirlines string `json:"JAirlines"`
	FAirlines string `json:"FAirlines"`

	YDirectAirlines string `json:"YDirectAirlines"`
	WDirectAirlines string `json:"WDirectAirlines"`
	JDirectAirlines string `json:"JDirectAirlines"`
	FDirectAirlines string `json:"FDirectAirlines"`

	YRemainingSeats int `json:"YRemainingSeats"`
	WRemainingSeats int `json:"WRemainingSeats"`
	JRemainingSeats int `json:"JRemainingSeats"`
	FRemainingSeats int `json:"FRemainingSeats"`

	TaxesCurrency string `json:"TaxesCurrency"`
	Source        string `json:"Source"`
}
