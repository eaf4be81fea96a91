package model

// Page is one fetched listing page: the raw markup plus its 1-based
// page number. Pages are ephemeral; they are consumed immediately into
// zero or more Records and never persisted.
type Page struct {
	// Number is the 1-based listing page number.
	Number int

	// HTML is the raw markup text of the page.
	HTML string
}
