package response

import "mercadopago_integration/internal/domain/entities"

type PreferenceResponse struct {
	ID                string `json:"id"`
	ExternalReference string `json:"external_reference"`
	Link              string `json:"link"`
}

func FromPreference(p entities.Preference) PreferenceResponse {
	return PreferenceResponse{
		ID:                p.ID,
		ExternalReference: p.ExternalReference,
		Link:              p.Link,
	}
}
