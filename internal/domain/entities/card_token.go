package entities

// CardTokenInput is the raw card data sent to the provider to obtain a
// single-use card token. It is never persisted.
type CardTokenInput struct {
	SiteID          string     `json:"site_id"`
	CardNumber      string     `json:"card_number"`
	ExpirationYear  string     `json:"expiration_year"`
	ExpirationMonth string     `json:"expiration_month"`
	SecurityCode    string     `json:"security_code"`
	Cardholder      Cardholder `json:"cardholder"`
}

type Cardholder struct {
	Name           string         `json:"name"`
	Identification Identification `json:"identification"`
}

type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// MockCreditCard returns the Mercado Pago Brazil test Mastercard. The
// cardholder name APRO makes the sandbox approve the payment.
//
// https://www.mercadopago.com.br/developers/en/docs/checkout-api/integration-test/test-cards
func MockCreditCard(expirationYear string) CardTokenInput {
	return CardTokenInput{
		SiteID:          "MLB",
		CardNumber:      "5031433215406351",
		ExpirationYear:  expirationYear,
		ExpirationMonth: "11",
		SecurityCode:    "123",
		Cardholder: Cardholder{
			Name:           "APRO",
			Identification: Identification{Type: "CPF", Number: "01234567890"},
		},
	}
}
