package extract

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/auditsense/auditsense/internal/pdftext"
)

// Service orchestrates text acquisition and pattern extraction. Acquisition
// strategies are tried in order, the first success short-circuiting; when all
// of them fail the result degrades to a minimal stub derived from the file
// name. Extract never returns an error: a malformed document yields a report
// with default values rather than a failed upload.
type Service struct {
	sources   []pdftext.Source
	extractor *Extractor
	logger    zerolog.Logger
}

// NewService creates a service with the standard strategy order: structured
// page extraction first, flat-text extraction as the fallback.
func NewService(logger zerolog.Logger) *Service {
	return &Service{
		sources: []pdftext.Source{
			pdftext.NewStructuredSource(),
			pdftext.NewPlainSource(),
		},
		extractor: NewExtractor(),
		logger:    logger.With().Str("component", "extract").Logger(),
	}
}

// NewServiceWith creates a service with explicit strategies and extractor.
// Intended for tests.
func NewServiceWith(logger zerolog.Logger, extractor *Extractor, sources ...pdftext.Source) *Service {
	return &Service{
		sources:   sources,
		extractor: extractor,
		logger:    logger,
	}
}

// Extract produces one finalized report for the document at path. fileName is
// the caller-declared original name, used for the stub fallback; overrides
// are merged on top of extracted values and always win when non-empty.
func (s *Service) Extract(path, fileName string, overrides Overrides) *Report {
	report := s.extract(path, fileName)
	s.applyOverrides(report, overrides)
	return report
}

func (s *Service) extract(path, fileName string) *Report {
	for _, source := range s.sources {
		doc, err := source.Extract(path)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("source", source.Name()).
				Str("file", fileName).
				Msg("text acquisition failed")
			continue
		}

		// Page-structured documents get the full rule set; flat documents
		// only support the label-based rules.
		if len(doc.Pages) > 0 {
			return s.extractor.FromDocument(doc)
		}
		return s.extractor.FromText(doc.Text)
	}

	s.logger.Warn().Str("file", fileName).Msg("all acquisition strategies failed, using stub report")
	return StubReport(fileName)
}

// StubReport builds the minimal record used when no text could be acquired:
// the organization name is derived from the file name with its extension
// stripped, all numeric fields are zero and all collections empty.
func StubReport(fileName string) *Report {
	report := NewReport()
	if name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)); name != "" && name != "." {
		report.OrganizationName = name
	}
	return report
}

func (s *Service) applyOverrides(report *Report, overrides Overrides) {
	if overrides.AuditorName != "" {
		report.AuditorName = overrides.AuditorName
	}
	if overrides.BuildingType != "" {
		report.BuildingType = overrides.BuildingType
	}
	if overrides.Notes != "" {
		report.Notes = overrides.Notes
	}
	if overrides.GrantAmount != nil {
		report.GrantAmount = *overrides.GrantAmount
	}
	if overrides.ImplementationStatus != "" {
		report.ImplementationStatus = NormalizeStatus(overrides.ImplementationStatus)
	}
	if overrides.Region != "" {
		report.Region = overrides.Region
	}
	if overrides.Industry != "" {
		report.Industry = overrides.Industry
	}
}
