package pipeline

import (
	"context"
	"errors"

	"resume-insight/apierr"
	"resume-insight/extractor"
	"resume-insight/logger"
	"resume-insight/models"
	"resume-insight/summarizer"
)

const (
	MsgNoFile = "no file"
	MsgBadPDF = "bad PDF"
	MsgNoText = "No text found in PDF"
)

type Store interface {
	Create(ctx context.Context, filename, summary, source string) (*models.Insight, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, bool)
}

// Result is what an upload returns to the caller.
type Result struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
}

// Service runs extract -> summarize (or fall back) -> persist.
type Service struct {
	store      Store
	summarizer Summarizer
	topN       int
	log        *logger.Logger
}

func NewService(store Store, s Summarizer, topN int, log *logger.Logger) *Service {
	if topN <= 0 {
		topN = summarizer.DefaultTopN
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:      store,
		summarizer: s,
		topN:       topN,
		log:        log.With("component", "pipeline"),
	}
}

// Process handles one uploaded document. Errors are *apierr.Error: validation
// failures return before anything is stored, everything else is internal.
func (s *Service) Process(ctx context.Context, filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, apierr.Validation(MsgNoFile, extractor.ErrEmptyDocument)
	}

	text, err := extractor.Extract(data)
	if err != nil {
		var perr *extractor.ParseError
		if errors.As(err, &perr) || errors.Is(err, extractor.ErrEmptyDocument) {
			return nil, apierr.Validation(MsgBadPDF, err)
		}
		return nil, apierr.Internal(err)
	}
	if text == "" {
		return nil, apierr.Validation(MsgNoText, nil)
	}

	source := models.SourceAI
	summary, ok := s.summarizer.Summarize(ctx, text)
	if !ok {
		source = models.SourceFallback
		summary = summarizer.FallbackSummary(text, s.topN)
	}

	insight, err := s.store.Create(ctx, filename, summary, source)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("insight stored", "id", insight.ID, "filename", filename, "source", source, "chars", len(text))
	return &Result{ID: insight.ID, Filename: insight.Filename, Summary: insight.Summary}, nil
}
