package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownButton is returned when a button value is not one of the known variants.
var ErrUnknownButton = errors.New("unknown button variant")

// Default sentinel comments delimiting the generated region.
const (
	DefaultStartMarker = "<!-- Publications start -->"
	DefaultEndMarker   = "<!-- Publications end -->"
)

// Markers are the literal comments that open and close the generated region.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns the standard Publications sentinel pair.
func DefaultMarkers() Markers {
	return Markers{Start: DefaultStartMarker, End: DefaultEndMarker}
}

// SectionData holds everything rendered into the section shell.
type SectionData struct {
	Title   string
	Entries []EntryData
}

// EntryData holds one publication card.
type EntryData struct {
	ID        string
	PageURL   string
	Date      string
	VenueHTML string // trusted, inserted verbatim
	Title     string
	Summary   string
	Image     ImageData
	Authors   []AuthorData
	Buttons   []ButtonData
}

// ImageData holds the card banner image.
type ImageData struct {
	Src    string
	Alt    string
	Height int
	Width  int
	Style  string // empty = no style attribute
}

// AuthorData holds one author byline.
type AuthorData struct {
	Name        string
	Affiliation string
	Highlighted bool
}

// ButtonData is implemented by LinkButtonData and CiteButtonData only.
type ButtonData interface {
	buttonVariant()
}

// LinkButtonData renders as a navigating anchor.
type LinkButtonData struct {
	Label       string
	Href        string
	TargetBlank bool
}

// CiteButtonData renders as a citation modal trigger.
type CiteButtonData struct {
	Label    string
	Filename string
}

func (LinkButtonData) buttonVariant() {}
func (CiteButtonData) buttonVariant() {}

// SectionRenderer defines the contract for rendering a section fragment.
type SectionRenderer interface {
	RenderSection(ctx context.Context, data *SectionData) (string, error)
}

// CardRenderer renders publications as the fixed card layout.
type CardRenderer struct {
	markers Markers
}

// NewCardRenderer creates a CardRenderer whose output opens and closes with markers.
func NewCardRenderer(markers Markers) *CardRenderer {
	return &CardRenderer{markers: markers}
}

// Compile-time interface check.
var _ SectionRenderer = (*CardRenderer)(nil)

// htmlEscaper escapes element content and attribute values alike. Quotes are
// escaped in content too, which keeps output identical to previously
// generated pages.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const sectionLayout = `%s
<section id="featured" class="home-section wg-featured  "  >
  <div class="home-section-bg " >
  </div>
  <div class="container">
    <div class="row  ">
      <div class="section-heading col-12 col-lg-4 mb-3 mb-lg-0 d-flex flex-column align-items-center align-items-lg-start">
        <h1 class="mb-0">%s</h1>
      </div>

      <div class="col-12 col-lg-8">

%s
      </div>
    </div>
  </div>
</section>
%s`

// Arguments: 1 id, 2 authors, 3 date, 4 venue, 5 page url, 6 image src,
// 7 image style attr, 8 height, 9 width, 10 alt, 11 title, 12 summary, 13 buttons.
const entryLayout = `        <!-- Publication %[1]s start -->
        <div class="card-simple view-card">
          <div class="article-metadata">
            <div>
%[2]s

              <span class="article-date">
                %[3]s
              </span>
            </div>
            <span class="middot-divider">
            </span>
            <span class="pub-publication">
              %[4]s
            </span>
          </div>
          <a href="%[5]s" >
            <div class="img-hover-zoom">
              <img src="%[6]s"%[7]s height="%[8]d" width="%[9]d"
                  class="article-banner" alt="%[10]s" loading="lazy">
            </div>
          </a>
          <div class="section-subheading article-title mb-1 mt-3">
            <a href="%[5]s" >%[11]s</a>
          </div>
          <a href="%[5]s"  class="summary-link">
            <div class="article-style">
              <p>%[12]s</p>
            </div>
          </a>
          <div class="btn-links">
%[13]s
          </div>
        </div>
        <!-- Publication %[1]s end -->`

// RenderSection renders all entries in input order inside the section shell.
// Entries are separated by one blank line. Rendering is all-or-nothing.
func (r *CardRenderer) RenderSection(ctx context.Context, data *SectionData) (string, error) {
	if data == nil {
		return "", errors.New("nil section data")
	}

	cards := make([]string, 0, len(data.Entries))
	for i := range data.Entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		card, err := renderEntry(&data.Entries[i])
		if err != nil {
			return "", fmt.Errorf("entry %d (%s): %w", i, data.Entries[i].ID, err)
		}
		cards = append(cards, card)
	}

	return fmt.Sprintf(sectionLayout,
		r.markers.Start,
		escapeHTML(data.Title),
		strings.Join(cards, "\n\n"),
		r.markers.End,
	), nil
}

func renderEntry(e *EntryData) (string, error) {
	buttons, err := renderButtons(e.Buttons)
	if err != nil {
		return "", err
	}

	style := ""
	if e.Image.Style != "" {
		style = ` style="` + escapeHTML(e.Image.Style) + `"`
	}

	return fmt.Sprintf(entryLayout,
		escapeHTML(e.ID),
		renderAuthors(e.Authors),
		escapeHTML(e.Date),
		e.VenueHTML,
		escapeHTML(e.PageURL),
		escapeHTML(e.Image.Src),
		style,
		e.Image.Height,
		e.Image.Width,
		escapeHTML(e.Image.Alt),
		escapeHTML(e.Title),
		escapeHTML(e.Summary),
		buttons,
	), nil
}

// renderAuthors emits one line per author; every author but the last is
// followed by a comma.
func renderAuthors(authors []AuthorData) string {
	lines := make([]string, 0, len(authors))
	for i, a := range authors {
		class := ""
		if a.Highlighted {
			class = ` class="author-highlighted"`
		}
		comma := ""
		if i < len(authors)-1 {
			comma = ","
		}
		lines = append(lines, fmt.Sprintf(
			`              <span%s>%s</span><i class="author-notes fas fa-info-circle" data-toggle="tooltip" title="%s"></i>%s`,
			class, escapeHTML(a.Name), escapeHTML(a.Affiliation), comma,
		))
	}
	return strings.Join(lines, "\n")
}

func renderButtons(buttons []ButtonData) (string, error) {
	lines := make([]string, 0, len(buttons)*3)
	for i, b := range buttons {
		var open, label string
		switch b := b.(type) {
		case CiteButtonData:
			open = `            <a class="btn btn-outline-primary btn-page-header btn-sm js-cite-modal" data-filename="` +
				escapeHTML(b.Filename) + `">`
			label = b.Label
		case LinkButtonData:
			target := ""
			if b.TargetBlank {
				target = ` target="_blank" rel="noopener"`
			}
			open = `            <a class="btn btn-outline-primary btn-page-header btn-sm" href="` +
				escapeHTML(b.Href) + `"` + target + `>`
			label = b.Label
		default:
			return "", fmt.Errorf("%w: button %d has type %T", ErrUnknownButton, i, b)
		}
		lines = append(lines, open, "              "+escapeHTML(label), "            </a>")
	}
	return strings.Join(lines, "\n"), nil
}
