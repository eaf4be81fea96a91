package model

// Field names captured from a report container. These must match the
// portal's label strings exactly: the extractor does exact-string
// matching, and the offline analysis step looks records up by these
// names, so any drift here silently loses data.
const (
	FieldPoliceStation = "Police Station"
	FieldFullName      = "Full Name"
	FieldContactNumber = "Contact Number"
	FieldAddress       = "Address"
	FieldPinCode       = "Pin code"
	FieldEmailID       = "E-mail ID"
	FieldDateTime      = "Date & Time"
	FieldPlaceDetails  = "Place of Lost / Found and Other Details (If Any)"
	FieldArticleDesc   = "Article Description"
)

// FieldNames is the canonical ordering of the allow-listed fields.
// CSV output and the database schema follow this order.
var FieldNames = []string{
	FieldPoliceStation,
	FieldFullName,
	FieldContactNumber,
	FieldAddress,
	FieldPinCode,
	FieldEmailID,
	FieldDateTime,
	FieldPlaceDetails,
	FieldArticleDesc,
}

// allowedFields supports O(1) allow-list lookups during extraction.
var allowedFields = func() map[string]bool {
	m := make(map[string]bool, len(FieldNames))
	for _, name := range FieldNames {
		m[name] = true
	}
	return m
}()

// IsAllowedField reports whether name is one of the nine fields the
// extractor is permitted to capture.
func IsAllowedField(name string) bool {
	return allowedFields[name]
}

// Record is one lost/found report, mapping allow-listed field names to
// the extracted string values. A field that was absent from the page's
// markup is simply missing from the map; values are never null-filled.
// Records carry no uniqueness or ordering invariant of their own; the
// aggregate sequence is ordered page-then-row by the scraper.
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Equal reports whether two records contain exactly the same fields
// with exactly the same values.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
