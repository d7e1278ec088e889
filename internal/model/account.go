package model

// AccountConfig is the immutable configuration record the converter core
// consumes. It is built from the YAML config or from request parameters.
type AccountConfig struct {
	IBAN                   string
	Currency               string
	OwnerName              string
	OwnerAddress           [2]string
	Servicer               Agent
	CodeIssuer             string
	AdditionalInfo         string
	AllowUnknownCategories bool
}

// OwnerParty returns the account owner as a party.
func (c AccountConfig) OwnerParty() Party {
	return Party{
		Name:    c.OwnerName,
		Address: []string{c.OwnerAddress[0], c.OwnerAddress[1]},
	}
}
