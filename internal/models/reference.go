package models

// Reference data entities served by the settlement backend. They are looked
// up by id and never mutated locally.

type Country struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Bank struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type DocumentType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type AccountType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Currency struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// FilterBanksByCountry returns the banks belonging to countryID.
func FilterBanksByCountry(banks []Bank, countryID string) []Bank {
	out := make([]Bank, 0, len(banks))
	for _, b := range banks {
		if b.CountryID == countryID {
			out = append(out, b)
		}
	}
	return out
}

// FilterDocumentTypesByCountry returns the document types belonging to countryID.
func FilterDocumentTypesByCountry(docs []DocumentType, countryID string) []DocumentType {
	out := make([]DocumentType, 0, len(docs))
	for _, d := range docs {
		if d.CountryID == countryID {
			out = append(out, d)
		}
	}
	return out
}
