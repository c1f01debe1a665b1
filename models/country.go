package models

// CountryCodeEntry maps a country name to its dialing code. The JSON field
// names match what the landing page's dropdown expects.
type CountryCodeEntry struct {
	CountryName string `json:"country"`
	DialCode    string `json:"value"` // digits only, no "+"
	DisplayCode string `json:"code"`  // with "+", e.g. "+91"
}
