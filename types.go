package pubsection

import "github.com/alnah/go-pubsection/internal/pipeline"

// Button type discriminator values.
const (
	ButtonTypeLink = "link"
	ButtonTypeCite = "cite"
)

// PublicationSet is the whole data file: a section title and its entries in
// display order.
type PublicationSet struct {
	SectionTitle string
	Entries      []Entry
}

// Entry is one publication card.
type Entry struct {
	ID        string // used in boundary comments only
	PageURL   string
	Date      string
	VenueHTML string // trusted markup, never escaped
	Title     string
	Summary   string
	Image     Image
	Authors   []Author
	Buttons   []Button
}

// Image is the card banner.
type Image struct {
	Src    string
	Alt    string
	Height int
	Width  int
	Style  string // optional inline style
}

// Author is one byline entry. Highlighted marks the site owner.
type Author struct {
	Name        string
	Affiliation string
	Highlighted bool
}

// Button is a card action. The only implementations are LinkButton and
// CiteButton; the unexported method keeps the set closed.
type Button interface {
	buttonType() string
}

// LinkButton navigates to Href, optionally in a new tab.
type LinkButton struct {
	Label       string
	Href        string
	TargetBlank bool
}

// CiteButton opens the citation modal for Filename.
type CiteButton struct {
	Label    string
	Filename string
}

func (LinkButton) buttonType() string { return ButtonTypeLink }
func (CiteButton) buttonType() string { return ButtonTypeCite }

// Markers are the sentinel comments delimiting the generated region.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns "<!-- Publications start -->" / "<!-- Publications end -->".
func DefaultMarkers() Markers {
	m := pipeline.DefaultMarkers()
	return Markers{Start: m.Start, End: m.End}
}

func (m Markers) toPipeline() pipeline.Markers {
	return pipeline.Markers{Start: m.Start, End: m.End}
}
