package i18n

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aarush-luthra/Government-Scheme/internal/services"
	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

// Translator is the batch translation endpoint the engine falls back to when
// a string has neither a dictionary entry nor a cached translation.
type Translator interface {
	TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)
}

// CacheStore persists translations between runs, one map per language keyed
// by the exact original string.
type CacheStore interface {
	TranslationCache(lang string) map[string]string
	MergeTranslationCache(lang string, entries map[string]string)
}

// Engine applies a target language to the catalog. Translation is best-effort
// enhancement: a failed batch call leaves whatever already applied in place
// and is never retried or rolled back.
type Engine struct {
	catalog    *Catalog
	cache      CacheStore
	translator Translator
	log        *zap.Logger

	group singleflight.Group

	mu      sync.Mutex
	current string
	gen     uint64
}

func NewEngine(catalog *Catalog, cache CacheStore, translator Translator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:    catalog,
		cache:      cache,
		translator: translator,
		log:        logger,
		current:    utils.SourceLanguage,
	}
}

// Catalog exposes the tracked strings for rendering.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Language returns the currently applied language code.
func (e *Engine) Language() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Translate switches the catalog to lang. Resolution order per string:
// pre-shipped dictionary, persisted cache (by original text), then one
// deduplicated batch call for whatever is left. Dictionary and cache hits are
// applied before the network is touched, so a cached UI never flashes
// source-language text while the call is in flight.
func (e *Engine) Translate(ctx context.Context, lang string) error {
	if !utils.IsSupportedLanguage(lang) {
		return services.NewInvalidError("unsupported language: " + lang)
	}

	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.current = lang
	e.mu.Unlock()

	if lang == utils.SourceLanguage {
		e.catalog.RestoreOriginals()
		return nil
	}

	dict := StaticDictionary(lang)
	var cached map[string]string
	if e.cache != nil {
		cached = e.cache.TranslationCache(lang)
	}

	// Phase 1: synchronous application of dictionary and cache hits.
	var pending []string
	seen := map[string]struct{}{}
	for _, key := range e.catalog.Keys() {
		original, _ := e.catalog.Original(key)
		if t, ok := dict[key]; ok {
			e.catalog.apply(key, t)
			continue
		}
		if t, ok := cached[original]; ok {
			e.catalog.apply(key, t)
			continue
		}
		if _, dup := seen[original]; dup {
			continue
		}
		seen[original] = struct{}{}
		pending = append(pending, original)
	}
	if len(pending) == 0 || e.translator == nil {
		return nil
	}

	// Phase 2: one batch call for the leftovers. Concurrent switches to the
	// same language share a single flight; a response that lost the race to a
	// newer Translate is discarded unapplied.
	type batchResult struct {
		texts        []string
		translations []string
	}
	v, err, _ := e.group.Do(lang, func() (any, error) {
		out, err := e.translator.TranslateBatch(ctx, pending, utils.SourceLanguage, lang)
		if err != nil {
			return nil, err
		}
		return batchResult{texts: pending, translations: out}, nil
	})
	if err != nil {
		// Partial translation is the accepted degraded state.
		e.log.Warn("batch translation failed", zap.String("lang", lang), zap.Error(err))
		return nil
	}

	e.mu.Lock()
	stale := gen != e.gen
	e.mu.Unlock()
	if stale {
		e.log.Debug("discarding stale batch translation", zap.String("lang", lang))
		return nil
	}

	res := v.(batchResult)
	fresh := make(map[string]string, len(res.texts))
	for i, original := range res.texts {
		translated := res.translations[i]
		if translated == "" {
			continue
		}
		e.catalog.applyByOriginal(original, translated)
		fresh[original] = translated
	}
	if e.cache != nil {
		e.cache.MergeTranslationCache(lang, fresh)
	}
	return nil
}
