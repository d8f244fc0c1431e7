package pubsection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-pubsection/internal/fileutil"
	"github.com/alnah/go-pubsection/internal/pipeline"
)

// Mode selects what Update does with the patched document.
type Mode int

const (
	// ModeWrite rewrites the document when its content changes.
	ModeWrite Mode = iota
	// ModeCheck never writes and fails with ErrOutOfDate if the document would change.
	ModeCheck
	// ModeDryRun never writes and only reports.
	ModeDryRun
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeDryRun:
		return "dry-run"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// UpdateRequest names the two files an update reads and the mode to run in.
type UpdateRequest struct {
	DataPath     string
	DocumentPath string
	Mode         Mode
}

// UpdateResult describes a completed update.
type UpdateResult struct {
	Entries int    // publications rendered
	Changed bool   // patched document differs from the original
	Written bool   // document was rewritten
	Section string // rendered section, markers included
}

// documentStore abstracts the target document I/O for tests.
type documentStore interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

type fileStore struct{}

func (fileStore) Read(path string) (string, error) {
	data, err := fileutil.ReadBounded(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (fileStore) Write(path, content string) error {
	return fileutil.WriteAtomic(path, content)
}

// Service renders publication sets and patches them into documents.
type Service struct {
	logger    *slog.Logger
	markers   Markers
	patchOpts pipeline.PatchOptions
	renderer  pipeline.SectionRenderer
	store     documentStore
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarkers replaces the default sentinel comments.
func WithMarkers(m Markers) Option {
	return func(s *Service) {
		s.markers = m
	}
}

// WithAllowDuplicateMarkers patches only the first marked region instead of
// failing when markers occur more than once.
func WithAllowDuplicateMarkers(allow bool) Option {
	return func(s *Service) {
		s.patchOpts.AllowDuplicates = allow
	}
}

// New creates a Service with default markers and file-backed document I/O.
func New(opts ...Option) *Service {
	s := &Service{
		logger:  slog.New(slog.DiscardHandler),
		markers: DefaultMarkers(),
		store:   fileStore{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		s.renderer = pipeline.NewCardRenderer(s.markers.toPipeline())
	}

	return s
}

// Markers returns the sentinel pair the service renders and searches for.
func (s *Service) Markers() Markers {
	return s.markers
}

// Render turns set into the section fragment, markers included.
// Venue markup is inserted as-is; unbalanced tags are logged as warnings.
func (s *Service) Render(ctx context.Context, set *PublicationSet) (string, error) {
	if set == nil {
		return "", ErrNilPublicationSet
	}
	if err := s.markers.toPipeline().Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMarkers, err)
	}

	data, err := toSectionData(set)
	if err != nil {
		return "", err
	}

	for _, e := range set.Entries {
		for _, problem := range pipeline.LintFragment(e.VenueHTML) {
			s.logger.Warn("venue markup is unbalanced", "entry", e.ID, "problem", problem)
		}
	}

	section, err := s.renderer.RenderSection(ctx, data)
	if err != nil {
		return "", fmt.Errorf("rendering section: %w", err)
	}
	return section, nil
}

// Patch replaces the marked region of doc with section.
func (s *Service) Patch(ctx context.Context, doc, section string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.markers.toPipeline().Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMarkers, err)
	}
	return pipeline.ReplaceRegion(doc, section, s.markers.toPipeline(), s.patchOpts)
}

// Update loads the data file, renders it, and patches the document.
// Every failure happens before the single write, so the document is either
// untouched or fully replaced. An unchanged document is not rewritten.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	if req.DataPath == "" {
		return nil, fmt.Errorf("%w: data file", ErrEmptyPath)
	}
	if req.DocumentPath == "" {
		return nil, fmt.Errorf("%w: target document", ErrEmptyPath)
	}

	log := s.logger.With("data", req.DataPath, "document", req.DocumentPath, "mode", req.Mode.String())

	set, err := LoadPublicationSet(req.DataPath)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded publications", "entries", len(set.Entries))

	section, err := s.Render(ctx, set)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Read(req.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	patched, err := s.Patch(ctx, doc, section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.DocumentPath, err)
	}

	result := &UpdateResult{
		Entries: len(set.Entries),
		Changed: patched != doc,
		Section: section,
	}

	switch req.Mode {
	case ModeCheck:
		if result.Changed {
			return result, fmt.Errorf("%w: %s", ErrOutOfDate, req.DocumentPath)
		}
		return result, nil
	case ModeDryRun:
		return result, nil
	}

	if !result.Changed {
		log.Debug("document already up to date")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.Write(req.DocumentPath, patched); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}
	result.Written = true
	log.Debug("document rewritten", "bytes", len(patched))

	return result, nil
}
