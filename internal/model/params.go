package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ComplaintType selects which kind of report listing to search.
// The portal encodes the type as a numeric string query parameter.
type ComplaintType string

const (
	// ComplaintTypeLost selects lost item reports.
	ComplaintTypeLost ComplaintType = "1"

	// ComplaintTypeFound selects found item reports.
	ComplaintTypeFound ComplaintType = "2"
)

// ParseComplaintType converts user input into a ComplaintType.
// It accepts the human-readable names ("lost", "found") as well as the
// portal's wire codes ("1", "2"), case-insensitively.
func ParseComplaintType(s string) (ComplaintType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lost", "1":
		return ComplaintTypeLost, nil
	case "found", "2":
		return ComplaintTypeFound, nil
	}
	return "", fmt.Errorf("unknown complaint type %q (use \"lost\" or \"found\")", s)
}

// String returns the human-readable name of the complaint type.
func (c ComplaintType) String() string {
	switch c {
	case ComplaintTypeLost:
		return "lost"
	case ComplaintTypeFound:
		return "found"
	}
	return string(c)
}

// ArticleType is one of the portal's fixed article categories.
// The value is the exact string the portal expects in the article_type
// query parameter.
type ArticleType string

// The closed set of article categories accepted by the portal.
const (
	ArticleDrivingLicense      ArticleType = "Driving License"
	ArticlePassport            ArticleType = "Passport"
	ArticlePANCard             ArticleType = "PAN Card"
	ArticleAadharCard          ArticleType = "Aadhar Card"
	ArticleVoterID             ArticleType = "Voter ID Card"
	ArticleRationCard          ArticleType = "Ration Card"
	ArticleEducationalDocument ArticleType = "Educational Document"
	ArticleOtherDocuments      ArticleType = "Other Documents"
	ArticleMobile              ArticleType = "Mobile"
)

// ArticleTypes returns every article category in display order.
func ArticleTypes() []ArticleType {
	return []ArticleType{
		ArticleDrivingLicense,
		ArticlePassport,
		ArticlePANCard,
		ArticleAadharCard,
		ArticleVoterID,
		ArticleRationCard,
		ArticleEducationalDocument,
		ArticleOtherDocuments,
		ArticleMobile,
	}
}

// ParseArticleType converts user input into an ArticleType.
// Matching is case-insensitive against the portal's category names.
// Deprecated categories are still constructible; callers that build
// SearchParams from user input should check IsDeprecated and warn.
func ParseArticleType(s string) (ArticleType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, at := range ArticleTypes() {
		if strings.ToLower(string(at)) == want {
			return at, nil
		}
	}
	return "", fmt.Errorf("unknown article type %q", s)
}

// IsDeprecated reports whether the portal has marked this article
// category as no longer in use. Deprecated categories remain valid in
// queries but may stop returning results in the future.
func (a ArticleType) IsDeprecated() bool {
	return a == ArticlePassport || a == ArticleMobile
}

// SearchParams holds one search against the lost/found listing.
// It is an immutable value type: use WithPage to derive a variant
// rather than mutating fields after construction.
type SearchParams struct {
	// ComplaintType selects lost or found reports.
	ComplaintType ComplaintType

	// ArticleType is the article category to search.
	ArticleType ArticleType

	// ArticleDesc is the free-text article description filter.
	ArticleDesc string

	// Page is the 1-based listing page number.
	Page int
}

// NewSearchParams returns SearchParams with the portal's defaults:
// lost item reports, the "Other Documents" category, page 1.
func NewSearchParams() SearchParams {
	return SearchParams{
		ComplaintType: ComplaintTypeLost,
		ArticleType:   ArticleOtherDocuments,
		ArticleDesc:   "",
		Page:          1,
	}
}

// WithPage returns a copy of the params with the page number replaced.
func (p SearchParams) WithPage(page int) SearchParams {
	p.Page = page
	return p
}

// Values serializes the params to URL query values. All values are
// strings; the page number is stringified. The key names match the
// portal's query parameters exactly.
func (p SearchParams) Values() url.Values {
	return url.Values{
		"complaint_type": {string(p.ComplaintType)},
		"article_type":   {string(p.ArticleType)},
		"article_desc":   {p.ArticleDesc},
		"page":           {strconv.Itoa(p.Page)},
	}
}
