package marketdata

// Response is the raw Alpha Vantage GLOBAL_QUOTE response envelope.
// The provider returns quote fields as position-prefixed strings; they are
// converted to typed values in ParseGlobalQuote. An empty GlobalQuote object
// (the provider's way of signalling an unknown symbol) is treated as an error
// at the parse boundary rather than defaulting deep in business logic.
type Response struct {
	GlobalQuote GlobalQuote `json:"Global Quote"`
	Note        string      `json:"Note,omitempty"`
	ErrorMsg    string      `json:"Error Message,omitempty"`
}

// GlobalQuote holds the string-typed quote fields of a GLOBAL_QUOTE response.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}
