package books

// Metadata is the record fetched from the catalog source for one book.
// All fields are optional; an empty record is a valid "nothing found" result.
type Metadata struct {
	Rating      string `json:"rating,omitempty"`
	RatingCount string `json:"rating_count,omitempty"`
	PageCount   string `json:"page_count,omitempty"`
	Year        string `json:"year,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// IsEmpty reports whether the record carries no displayable fields.
func (m Metadata) IsEmpty() bool {
	return m == Metadata{}
}
