// Package pubsection keeps the "Featured Publications" section of a static
// site in sync with a data file.
//
// # Quick Start
//
// Render the data file and patch it into the page:
//
//	svc := pubsection.New()
//	result, err := svc.Update(ctx, pubsection.UpdateRequest{
//	    DataPath:     "data/featured_publications.json",
//	    DocumentPath: "index.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Entries, result.Written)
//
// # Pipeline
//
//  1. Load: the JSON (or YAML) data file is decoded and validated. Missing keys
//     are reported with their full path, e.g. entries[1].title.
//  2. Render: each entry becomes a fixed card layout. Text and attribute values
//     are escaped; venue_html is trusted markup and inserted verbatim.
//  3. Patch: the span from the first "<!-- Publications start -->" to the
//     nearest following "<!-- Publications end -->" is replaced.
//  4. Write: the document is replaced atomically, and only if it changed.
//
// Loading, rendering, and patching all finish before the write, so a bad data
// file or a page without markers never leaves the page half updated.
//
// # Data File
//
//	{
//	  "section_title": "Featured Publications",
//	  "entries": [{
//	    "id": "smith2024",
//	    "page_url": "/publication/smith2024/",
//	    "date": "Jan 2024",
//	    "venue_html": "<em>Nature Methods</em>",
//	    "title": "...",
//	    "summary": "...",
//	    "image": {"src": "/img/smith.png", "alt": "...", "height": 300, "width": 500},
//	    "authors": [{"name": "Ada Smith", "affiliation": "Univ A", "highlighted": true}],
//	    "buttons": [
//	      {"label": "PDF", "href": "/smith2024.pdf", "target_blank": true},
//	      {"type": "cite", "label": "Cite", "filename": "/smith2024.bib"}
//	    ]
//	  }]
//	}
//
// # Options
//
//	svc := pubsection.New(
//	    pubsection.WithLogger(slog.Default()),
//	    pubsection.WithMarkers(pubsection.Markers{Start: "<!-- pubs -->", End: "<!-- /pubs -->"}),
//	    pubsection.WithAllowDuplicateMarkers(true),
//	)
//
// Use ModeCheck in CI to fail when the page is stale, or ModeDryRun to render
// without writing.
package pubsection
