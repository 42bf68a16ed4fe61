// Package recognizer is the entry point hosts use: it picks the locale for
// a culture, builds the merged extractor and parser once, and memoizes
// extraction through an optional result cache.
package recognizer

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/chinese"
	"github.com/hrygo/timesense/plugin/datetime/english"
	"github.com/hrygo/timesense/store/cache"
)

// ErrUnsupportedCulture is returned by New for a culture without a locale.
var ErrUnsupportedCulture = errors.New("unsupported culture")

var locales = map[string]func() *datetime.LocaleConfig{
	english.Culture: english.Config,
	chinese.Culture: chinese.Config,
}

var aliases = map[string]string{
	"en":      english.Culture,
	"english": english.Culture,
	"zh":      chinese.Culture,
	"zh-hans": chinese.Culture,
	"chinese": chinese.Culture,
}

// Cultures lists the supported culture codes.
func Cultures() []string {
	out := make([]string, 0, len(locales))
	for c := range locales {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// NormalizeCulture maps a culture code or alias to a supported culture.
func NormalizeCulture(culture string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(culture))
	c = strings.ReplaceAll(c, "_", "-")
	if a, ok := aliases[c]; ok {
		c = a
	}
	_, ok := locales[c]
	return c, ok
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithOptions sets the recognizer switches.
func WithOptions(opts datetime.Options) Option {
	return func(r *Recognizer) { r.opts = opts }
}

// WithCache memoizes Extract. The cache may be shared between recognizers
// of different cultures and options.
func WithCache(c *cache.ResultCache) Option {
	return func(r *Recognizer) { r.cache = c }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recognizer) { r.logger = l }
}

// Recognizer extracts and resolves temporal expressions of one culture.
// It is safe for concurrent use.
type Recognizer struct {
	culture   string
	opts      datetime.Options
	extractor *datetime.MergedExtractor
	parser    *datetime.MergedParser
	cache     *cache.ResultCache
	logger    *slog.Logger
}

// New builds a recognizer for culture.
func New(culture string, opts ...Option) (*Recognizer, error) {
	r := &Recognizer{logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}

	c, ok := NormalizeCulture(culture)
	if !ok {
		r.logger.Warn("unsupported culture requested", "culture", culture)
		return nil, errors.Wrapf(ErrUnsupportedCulture, "culture %q", culture)
	}
	cfg := locales[c]()

	r.culture = c
	r.extractor = datetime.NewMergedExtractor(cfg, r.opts)
	r.parser = datetime.NewMergedParser(cfg)
	return r, nil
}

// Culture returns the normalized culture code.
func (r *Recognizer) Culture() string { return r.culture }

// Options returns the recognizer switches.
func (r *Recognizer) Options() datetime.Options { return r.opts }

// Extract returns the temporal spans of text relative to ref.
func (r *Recognizer) Extract(ctx context.Context, text string, ref time.Time) []datetime.ExtractResult {
	if r.cache == nil || r.opts.Has(datetime.NoProtoCache) {
		return r.extractor.Extract(text, ref)
	}
	key := cache.Key{Options: r.opts, Culture: r.culture, Text: text, Ref: ref}
	return r.cache.GetOrCompute(ctx, key, func() []datetime.ExtractResult {
		r.logger.Debug("extraction cache miss", "culture", r.culture, "length", len(text))
		return r.extractor.Extract(text, ref)
	})
}

// Parse resolves one extracted span.
func (r *Recognizer) Parse(er datetime.ExtractResult, ref time.Time) datetime.ParseResult {
	return r.parser.Parse(er, ref)
}

// Recognize extracts and resolves in one go. Spans no rule could resolve
// are kept with a nil Value.
func (r *Recognizer) Recognize(ctx context.Context, text string, ref time.Time) []datetime.ParseResult {
	ers := r.Extract(ctx, text, ref)
	if len(ers) == 0 {
		return nil
	}
	out := make([]datetime.ParseResult, 0, len(ers))
	for _, er := range ers {
		pr := r.parser.Parse(er, ref)
		if pr.Value == nil {
			r.logger.Debug("span left unresolved", "type", er.Kind, "text", er.Text)
		}
		out = append(out, pr)
	}
	return out
}
