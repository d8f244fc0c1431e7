package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const (
	startMarker = DefaultStartMarker
	endMarker   = DefaultEndMarker
)

// ---------------------------------------------------------------------------
// TestFindRegion - Marker search
// ---------------------------------------------------------------------------

func TestFindRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		opts    PatchOptions
		want    string // text covered by the region
		wantErr error
	}{
		{
			name: "single line region",
			doc:  "a" + startMarker + "old" + endMarker + "b",
			want: startMarker + "old" + endMarker,
		},
		{
			name: "spans line breaks",
			doc:  "<body>\n" + startMarker + "\n<p>old</p>\n" + endMarker + "\n</body>",
			want: startMarker + "\n<p>old</p>\n" + endMarker,
		},
		{
			name: "adjacent markers",
			doc:  startMarker + endMarker,
			want: startMarker + endMarker,
		},
		{
			name:    "no markers",
			doc:     "<html><body></body></html>",
			wantErr: ErrMarkersNotFound,
		},
		{
			name:    "start without end",
			doc:     startMarker + "dangling",
			wantErr: ErrMarkersNotFound,
		},
		{
			name:    "end before start only",
			doc:     endMarker + "x" + startMarker,
			wantErr: ErrMarkersNotFound,
		},
		{
			name:    "two regions rejected",
			doc:     startMarker + "1" + endMarker + startMarker + "2" + endMarker,
			wantErr: ErrDuplicateMarkers,
		},
		{
			name:    "stray end after region rejected",
			doc:     startMarker + "1" + endMarker + "x" + endMarker,
			wantErr: ErrDuplicateMarkers,
		},
		{
			name: "two regions first wins when allowed",
			doc:  "x" + startMarker + "1" + endMarker + startMarker + "2" + endMarker,
			opts: PatchOptions{AllowDuplicates: true},
			want: startMarker + "1" + endMarker,
		},
		{
			name: "nested start reaches nearest end when allowed",
			doc:  startMarker + "a" + startMarker + "b" + endMarker + "c" + endMarker,
			opts: PatchOptions{AllowDuplicates: true},
			want: startMarker + "a" + startMarker + "b" + endMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			region, err := FindRegion(tt.doc, DefaultMarkers(), tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindRegion() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRegion() error = %v", err)
			}
			if got := tt.doc[region.Start:region.End]; got != tt.want {
				t.Errorf("region = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindRegion_InvalidMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		markers Markers
	}{
		{"empty start", Markers{Start: "", End: endMarker}},
		{"empty end", Markers{Start: startMarker, End: ""}},
		{"identical", Markers{Start: "<!-- x -->", End: "<!-- x -->"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := FindRegion("<!-- x -->", tt.markers, PatchOptions{}); err == nil {
				t.Error("FindRegion() succeeded with invalid markers")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceRegion - Substitution
// ---------------------------------------------------------------------------

func TestReplaceRegion(t *testing.T) {
	t.Parallel()

	doc := "<html>\n<body>\n" + startMarker + "\nOLD\n" + endMarker + "\n<footer>$1 \\1</footer>\n</body>\n</html>\n"
	replacement := startMarker + "\nNEW $0 \\g<0>\n" + endMarker

	got, err := ReplaceRegion(doc, replacement, DefaultMarkers(), PatchOptions{})
	if err != nil {
		t.Fatalf("ReplaceRegion() error = %v", err)
	}

	want := "<html>\n<body>\n" + replacement + "\n<footer>$1 \\1</footer>\n</body>\n</html>\n"
	if got != want {
		t.Errorf("ReplaceRegion() =\n%q\nwant\n%q", got, want)
	}
}

func TestReplaceRegion_OnlyFirstWhenAllowed(t *testing.T) {
	t.Parallel()

	doc := startMarker + "1" + endMarker + "|" + startMarker + "2" + endMarker
	got, err := ReplaceRegion(doc, startMarker+"N"+endMarker, DefaultMarkers(), PatchOptions{AllowDuplicates: true})
	if err != nil {
		t.Fatal(err)
	}

	want := startMarker + "N" + endMarker + "|" + startMarker + "2" + endMarker
	if got != want {
		t.Errorf("ReplaceRegion() = %q, want %q", got, want)
	}
}

func TestReplaceRegion_NotFoundLeavesInput(t *testing.T) {
	t.Parallel()

	doc := "<p>no markers here</p>"
	got, err := ReplaceRegion(doc, "x", DefaultMarkers(), PatchOptions{})
	if !errors.Is(err, ErrMarkersNotFound) {
		t.Fatalf("error = %v, want ErrMarkersNotFound", err)
	}
	if got != "" {
		t.Errorf("ReplaceRegion() returned %q on error, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestRenderThenPatch_Idempotent - Second patch is a no-op
// ---------------------------------------------------------------------------

func TestRenderThenPatch_Idempotent(t *testing.T) {
	t.Parallel()

	section, err := NewCardRenderer(DefaultMarkers()).RenderSection(context.Background(),
		&SectionData{Title: "Featured", Entries: []EntryData{sampleEntry(), sampleEntry()}})
	if err != nil {
		t.Fatal(err)
	}

	doc := "<html>\n" + startMarker + "\nstale\n" + endMarker + "\n</html>"

	first, err := ReplaceRegion(doc, section, DefaultMarkers(), PatchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReplaceRegion(first, section, DefaultMarkers(), PatchOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("second patch changed the document")
	}
	if strings.Contains(first, "stale") {
		t.Error("old region content survived the patch")
	}
}
