package utils

// Form Tag Constants
const (
	FormEnquiry  = "enquiry"
	FormCallback = "callback"
	FormFooter   = "footer"
)

// Spreadsheet Tab Constants
const (
	SheetEnquiry  = "Enquiry"
	SheetCallback = "Callback"
	SheetFooter   = "Footer"
)

// CRM Channel Constants
const (
	CRMChannel = "MS"
	CRMSource  = "Website"
)

// DefaultDialCode is the registry's default selection (India).
const DefaultDialCode = "91"

// GenericSubmitError is shown when a CRM failure carries no message of its own.
const GenericSubmitError = "There was an error submitting the form. Please try again later."
