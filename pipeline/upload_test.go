package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-insight/apierr"
	"resume-insight/config"
	"resume-insight/models"
	"resume-insight/summarizer"
	"resume-insight/testutil"
)

type stubSummarizer struct {
	summary string
	ok      bool
	calls   int
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, bool) {
	s.calls++
	return s.summary, s.ok
}

type failingStore struct{}

func (failingStore) Create(ctx context.Context, filename, summary, source string) (*models.Insight, error) {
	return nil, errors.New("disk I/O error")
}

func disabledClient() *summarizer.Client {
	return summarizer.NewClient(config.Summarizer{}, nil)
}

func TestProcessFallbackWhenAIDisabled(t *testing.T) {
	ctx := context.Background()
	store := testutil.Store(t)
	svc := NewService(store, disabledClient(), 5, nil)

	res, err := svc.Process(ctx, "resume.pdf", testutil.BuildPDF("cat dog cat bird cat dog"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := "(Fallback) Frequent words: cat(3), dog(2), bird(1)"
	if res.Summary != want {
		t.Errorf("expected %q, got %q", want, res.Summary)
	}
	if res.Filename != "resume.pdf" {
		t.Errorf("unexpected filename %q", res.Filename)
	}

	stored, err := store.GetByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Summary != want || stored.Filename != "resume.pdf" || stored.Source != models.SourceFallback {
		t.Errorf("unexpected stored insight %+v", stored)
	}
}

func TestProcessUsesAISummary(t *testing.T) {
	ctx := context.Background()
	store := testutil.Store(t)
	ai := &stubSummarizer{summary: "Backend engineer with 5 years of Go.", ok: true}
	svc := NewService(store, ai, 5, nil)

	res, err := svc.Process(ctx, "cv.pdf", testutil.BuildPDF("go go go"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Summary != ai.summary {
		t.Errorf("expected AI summary, got %q", res.Summary)
	}
	stored, err := store.GetByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Source != models.SourceAI {
		t.Errorf("expected source ai, got %q", stored.Source)
	}
}

func TestProcessFallsBackWhenRemoteFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := summarizer.NewClient(config.Summarizer{APIKey: "k", URL: srv.URL}, nil)
	svc := NewService(testutil.Store(t), client, 5, nil)

	res, err := svc.Process(context.Background(), "r.pdf", testutil.BuildPDF("rust rust go"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.HasPrefix(res.Summary, summarizer.FallbackPrefix) {
		t.Errorf("expected fallback summary, got %q", res.Summary)
	}
}

func TestProcessValidationErrorsPersistNothing(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		msg  string
	}{
		{"empty upload", nil, MsgNoFile},
		{"not a pdf", []byte("plain text pretending to be a pdf"), MsgBadPDF},
		{"no text", testutil.BuildPDF(""), MsgNoText},
		{"whitespace only", testutil.BuildPDF("   "), MsgNoText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := testutil.Store(t)
			ai := &stubSummarizer{summary: "x", ok: true}
			svc := NewService(store, ai, 5, nil)

			_, err := svc.Process(ctx, "f.pdf", tc.data)
			if !apierr.IsKind(err, apierr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tc.msg {
				t.Errorf("expected message %q, got %q", tc.msg, err.Error())
			}
			if ai.calls != 0 {
				t.Errorf("summarizer should not be called, got %d calls", ai.calls)
			}
			all, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 0 {
				t.Errorf("expected nothing persisted, got %d", len(all))
			}
		})
	}
}

func TestProcessStoreFailureIsInternal(t *testing.T) {
	svc := NewService(failingStore{}, disabledClient(), 5, nil)

	_, err := svc.Process(context.Background(), "f.pdf", testutil.BuildPDF("hello"))
	if !apierr.IsKind(err, apierr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk I/O error") {
		t.Errorf("expected original message, got %q", err.Error())
	}
}
