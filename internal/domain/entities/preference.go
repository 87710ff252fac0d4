package entities

// Preference is the trimmed view of a provider checkout preference.
//
// Link is the provider init_point: the hosted checkout page URL.
type Preference struct {
	ID                string `json:"id"`
	ExternalReference string `json:"external_reference"`
	Link              string `json:"link"`
}

type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}
