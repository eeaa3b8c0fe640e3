package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type translatorStub struct {
	fn    func(texts []string) ([]string, error)
	calls int
	last  []string
}

func (s *translatorStub) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	s.calls++
	s.last = texts
	if s.fn != nil {
		return s.fn(texts)
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = "[" + targetLang + "]" + t
	}
	return out, nil
}

type cacheStub struct {
	data   map[string]map[string]string
	merged map[string]string
}

func newCacheStub() *cacheStub {
	return &cacheStub{data: map[string]map[string]string{}}
}

func (s *cacheStub) TranslationCache(lang string) map[string]string {
	if m, ok := s.data[lang]; ok {
		return m
	}
	return map[string]string{}
}

func (s *cacheStub) MergeTranslationCache(lang string, entries map[string]string) {
	s.merged = entries
	m := s.data[lang]
	if m == nil {
		m = map[string]string{}
		s.data[lang] = m
	}
	for k, v := range entries {
		m[k] = v
	}
}

func TestTranslateRejectsUnsupportedLanguage(t *testing.T) {
	e := NewEngine(NewCatalog(), newCacheStub(), &translatorStub{}, nil)
	if err := e.Translate(context.Background(), "fr_FR"); err == nil {
		t.Fatal("Translate() accepted fr_FR")
	}
}

func TestTranslateSourceLanguageRestoresWithoutNetwork(t *testing.T) {
	tr := &translatorStub{}
	cat := NewCatalog()
	cat.Register("k", "Hello")
	e := NewEngine(cat, newCacheStub(), tr, nil)

	if err := e.Translate(context.Background(), "te_IN"); err != nil {
		t.Fatalf("Translate(te_IN) error = %v", err)
	}
	if err := e.Translate(context.Background(), "en_XX"); err != nil {
		t.Fatalf("Translate(en_XX) error = %v", err)
	}
	if got := cat.Text("k"); got != "Hello" {
		t.Errorf("Text() = %q after restore", got)
	}
	if tr.calls != 1 {
		t.Errorf("translator called %d times, source switch must be local", tr.calls)
	}
	if e.Language() != "en_XX" {
		t.Errorf("Language() = %q", e.Language())
	}
}

func TestTranslateDictionaryHitSkipsNetwork(t *testing.T) {
	tr := &translatorStub{}
	cat := NewCatalog()
	cat.Register("app_title", "Government Scheme Assistant")
	cat.Register("custom_key", "How do I apply?")
	e := NewEngine(cat, newCacheStub(), tr, nil)

	if err := e.Translate(context.Background(), "hi_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got := cat.Text("app_title"); got != "सरकारी योजना सहायक" {
		t.Errorf("dictionary entry not applied: %q", got)
	}
	want := []string{"How do I apply?"}
	if diff := cmp.Diff(want, tr.last); diff != "" {
		t.Errorf("batch texts mismatch (-want +got):\n%s", diff)
	}
	if got := cat.Text("custom_key"); got != "[hi_IN]How do I apply?" {
		t.Errorf("batch result not applied: %q", got)
	}
}

func TestTranslateCacheHitSkipsNetwork(t *testing.T) {
	tr := &translatorStub{}
	cache := newCacheStub()
	cache.data["te_IN"] = map[string]string{"How do I apply?": "నేను ఎలా దరఖాస్తు చేయాలి?"}
	cat := NewCatalog()
	cat.Register("custom_key", "How do I apply?")
	e := NewEngine(cat, cache, tr, nil)

	if err := e.Translate(context.Background(), "te_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if tr.calls != 0 {
		t.Errorf("translator called %d times with everything cached", tr.calls)
	}
	if got := cat.Text("custom_key"); got != "నేను ఎలా దరఖాస్తు చేయాలి?" {
		t.Errorf("cached translation not applied: %q", got)
	}
}

func TestTranslateDeduplicatesSharedOriginals(t *testing.T) {
	tr := &translatorStub{}
	cat := NewCatalog()
	cat.Register("k1", "Apply now")
	cat.Register("k2", "Apply now")
	cat.Register("k3", "Check status")
	e := NewEngine(cat, newCacheStub(), tr, nil)

	if err := e.Translate(context.Background(), "kn_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	want := []string{"Apply now", "Check status"}
	if diff := cmp.Diff(want, tr.last); diff != "" {
		t.Errorf("batch texts mismatch (-want +got):\n%s", diff)
	}
	if cat.Text("k1") != cat.Text("k2") {
		t.Errorf("shared original diverged: %q vs %q", cat.Text("k1"), cat.Text("k2"))
	}
}

func TestTranslateMergesFreshResultsIntoCache(t *testing.T) {
	tr := &translatorStub{}
	cache := newCacheStub()
	cat := NewCatalog()
	cat.Register("k", "Apply now")
	e := NewEngine(cat, cache, tr, nil)

	if err := e.Translate(context.Background(), "ml_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	want := map[string]string{"Apply now": "[ml_IN]Apply now"}
	if diff := cmp.Diff(want, cache.merged); diff != "" {
		t.Errorf("cache merge mismatch (-want +got):\n%s", diff)
	}

	// A second switch to the same language is now fully served by the cache.
	e.Translate(context.Background(), "en_XX")
	if err := e.Translate(context.Background(), "ml_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if tr.calls != 1 {
		t.Errorf("translator called %d times, want 1", tr.calls)
	}
}

func TestTranslateBatchFailureKeepsPartialState(t *testing.T) {
	tr := &translatorStub{fn: func([]string) ([]string, error) { return nil, errors.New("backend down") }}
	cat := NewCatalog()
	cat.Register("app_title", "Government Scheme Assistant")
	cat.Register("custom_key", "How do I apply?")
	e := NewEngine(cat, newCacheStub(), tr, nil)

	if err := e.Translate(context.Background(), "hi_IN"); err != nil {
		t.Fatalf("Translate() error = %v, batch failure is a degraded state, not an error", err)
	}
	if got := cat.Text("app_title"); got != "सरकारी योजना सहायक" {
		t.Errorf("dictionary phase rolled back: %q", got)
	}
	if got := cat.Text("custom_key"); got != "How do I apply?" {
		t.Errorf("failed batch partially applied: %q", got)
	}
}

func TestTranslateSkipsEmptyTranslations(t *testing.T) {
	tr := &translatorStub{fn: func(texts []string) ([]string, error) {
		return make([]string, len(texts)), nil
	}}
	cat := NewCatalog()
	cat.Register("k", "Hello")
	e := NewEngine(cat, newCacheStub(), tr, nil)

	if err := e.Translate(context.Background(), "pa_IN"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got := cat.Text("k"); got != "Hello" {
		t.Errorf("empty translation applied: %q", got)
	}
}

func TestDefaultCatalogCoversDictionaryKeys(t *testing.T) {
	cat := NewDefaultCatalog()
	for key := range StaticDictionary("hi_IN") {
		if _, ok := cat.Original(key); !ok {
			t.Errorf("dictionary key %q is not registered in the default catalog", key)
		}
	}
}
