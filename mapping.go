package pubsection

import (
	"fmt"

	"github.com/alnah/go-pubsection/internal/pipeline"
)

// toSectionData converts public types to the pipeline's render input.
func toSectionData(set *PublicationSet) (*pipeline.SectionData, error) {
	data := &pipeline.SectionData{
		Title:   set.SectionTitle,
		Entries: make([]pipeline.EntryData, 0, len(set.Entries)),
	}

	for i := range set.Entries {
		e := &set.Entries[i]

		authors := make([]pipeline.AuthorData, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, pipeline.AuthorData{
				Name:        a.Name,
				Affiliation: a.Affiliation,
				Highlighted: a.Highlighted,
			})
		}

		buttons := make([]pipeline.ButtonData, 0, len(e.Buttons))
		for j, b := range e.Buttons {
			bd, err := toButtonData(b)
			if err != nil {
				return nil, fmt.Errorf("entries[%d].buttons[%d]: %w", i, j, err)
			}
			buttons = append(buttons, bd)
		}

		data.Entries = append(data.Entries, pipeline.EntryData{
			ID:        e.ID,
			PageURL:   e.PageURL,
			Date:      e.Date,
			VenueHTML: e.VenueHTML,
			Title:     e.Title,
			Summary:   e.Summary,
			Image: pipeline.ImageData{
				Src:    e.Image.Src,
				Alt:    e.Image.Alt,
				Height: e.Image.Height,
				Width:  e.Image.Width,
				Style:  e.Image.Style,
			},
			Authors: authors,
			Buttons: buttons,
		})
	}

	return data, nil
}

func toButtonData(b Button) (pipeline.ButtonData, error) {
	switch b := b.(type) {
	case LinkButton:
		return pipeline.LinkButtonData{Label: b.Label, Href: b.Href, TargetBlank: b.TargetBlank}, nil
	case CiteButton:
		return pipeline.CiteButtonData{Label: b.Label, Filename: b.Filename}, nil
	case *LinkButton:
		if b != nil {
			return toButtonData(*b)
		}
	case *CiteButton:
		if b != nil {
			return toButtonData(*b)
		}
	}
	return nil, fmt.Errorf("%w: unsupported button %T", ErrInvalidField, b)
}
