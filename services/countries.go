package services

import (
	"sort"

	"lead-relay/models"
	"lead-relay/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// countryCodes is the static dialing-code table baked into the build. Entries
// are unique by country name; the US and Canada legitimately share a code.
var countryCodes = []models.CountryCodeEntry{
	{CountryName: "India", DisplayCode: "+91", DialCode: "91"},
	{CountryName: "Pakistan", DisplayCode: "+92", DialCode: "92"},
	{CountryName: "Bangladesh", DisplayCode: "+880", DialCode: "880"},
	{CountryName: "Sri Lanka", DisplayCode: "+94", DialCode: "94"},
	{CountryName: "Nepal", DisplayCode: "+977", DialCode: "977"},
	{CountryName: "China", DisplayCode: "+86", DialCode: "86"},
	{CountryName: "Japan", DisplayCode: "+81", DialCode: "81"},
	{CountryName: "South Korea", DisplayCode: "+82", DialCode: "82"},
	{CountryName: "Thailand", DisplayCode: "+66", DialCode: "66"},
	{CountryName: "Malaysia", DisplayCode: "+60", DialCode: "60"},
	{CountryName: "Singapore", DisplayCode: "+65", DialCode: "65"},
	{CountryName: "Indonesia", DisplayCode: "+62", DialCode: "62"},
	{CountryName: "Philippines", DisplayCode: "+63", DialCode: "63"},
	{CountryName: "Vietnam", DisplayCode: "+84", DialCode: "84"},
	{CountryName: "Afghanistan", DisplayCode: "+93", DialCode: "93"},
	{CountryName: "Saudi Arabia", DisplayCode: "+966", DialCode: "966"},
	{CountryName: "United Arab Emirates", DisplayCode: "+971", DialCode: "971"},
	{CountryName: "Qatar", DisplayCode: "+974", DialCode: "974"},
	{CountryName: "Kuwait", DisplayCode: "+965", DialCode: "965"},
	{CountryName: "Oman", DisplayCode: "+968", DialCode: "968"},
	{CountryName: "Bahrain", DisplayCode: "+973", DialCode: "973"},
	{CountryName: "Iran", DisplayCode: "+98", DialCode: "98"},
	{CountryName: "Iraq", DisplayCode: "+964", DialCode: "964"},
	{CountryName: "Israel", DisplayCode: "+972", DialCode: "972"},
	{CountryName: "Jordan", DisplayCode: "+962", DialCode: "962"},
	{CountryName: "Lebanon", DisplayCode: "+961", DialCode: "961"},
	{CountryName: "Yemen", DisplayCode: "+967", DialCode: "967"},
	{CountryName: "United Kingdom", DisplayCode: "+44", DialCode: "44"},
	{CountryName: "Germany", DisplayCode: "+49", DialCode: "49"},
	{CountryName: "France", DisplayCode: "+33", DialCode: "33"},
	{CountryName: "Italy", DisplayCode: "+39", DialCode: "39"},
	{CountryName: "Spain", DisplayCode: "+34", DialCode: "34"},
	{CountryName: "Netherlands", DisplayCode: "+31", DialCode: "31"},
	{CountryName: "Belgium", DisplayCode: "+32", DialCode: "32"},
	{CountryName: "Switzerland", DisplayCode: "+41", DialCode: "41"},
	{CountryName: "Austria", DisplayCode: "+43", DialCode: "43"},
	{CountryName: "Sweden", DisplayCode: "+46", DialCode: "46"},
	{CountryName: "Norway", DisplayCode: "+47", DialCode: "47"},
	{CountryName: "Denmark", DisplayCode: "+45", DialCode: "45"},
	{CountryName: "Poland", DisplayCode: "+48", DialCode: "48"},
	{CountryName: "Russia", DisplayCode: "+7", DialCode: "7"},
	{CountryName: "United States", DisplayCode: "+1", DialCode: "1"},
	{CountryName: "Canada", DisplayCode: "+1", DialCode: "1"},
	{CountryName: "Mexico", DisplayCode: "+52", DialCode: "52"},
	{CountryName: "Brazil", DisplayCode: "+55", DialCode: "55"},
	{CountryName: "Argentina", DisplayCode: "+54", DialCode: "54"},
	{CountryName: "Chile", DisplayCode: "+56", DialCode: "56"},
	{CountryName: "Colombia", DisplayCode: "+57", DialCode: "57"},
	{CountryName: "Peru", DisplayCode: "+51", DialCode: "51"},
	{CountryName: "Venezuela", DisplayCode: "+58", DialCode: "58"},
	{CountryName: "Uruguay", DisplayCode: "+598", DialCode: "598"},
	{CountryName: "Paraguay", DisplayCode: "+595", DialCode: "595"},
	{CountryName: "Bolivia", DisplayCode: "+591", DialCode: "591"},
}

// LoadCountries returns the registry sorted by country name ascending, using
// a locale-aware comparison so ordering matches the page's dropdowns.
func LoadCountries() []models.CountryCodeEntry {
	entries := make([]models.CountryCodeEntry, len(countryCodes))
	copy(entries, countryCodes)

	// Collators are not safe for concurrent use, so build one per call.
	c := collate.New(language.English)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].CountryName, entries[j].CountryName) < 0
	})
	return entries
}

// DefaultCountry returns the default dropdown selection, fixed to dial code
// "91" (India).
func DefaultCountry() models.CountryCodeEntry {
	for _, entry := range countryCodes {
		if entry.DialCode == utils.DefaultDialCode {
			return entry
		}
	}
	// The table always carries the default entry; this is unreachable.
	return models.CountryCodeEntry{}
}
