package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/recognizer"
	"github.com/hrygo/timesense/plugin/datetime/rrule"
	apierrors "github.com/hrygo/timesense/server/internal/errors"
	"github.com/hrygo/timesense/server/internal/observability"
	"github.com/hrygo/timesense/server/timezone"
)

const (
	routeExtract   = "extract"
	routeRecognize = "recognize"

	maxOccurrences = 100
)

// RecognizeRequest is the body of POST /api/v1/extract and
// POST /api/v1/recognize. Culture and options default to the server
// profile; reference defaults to now. Occurrences asks recognize for that
// many upcoming instants of every recurrence.
type RecognizeRequest struct {
	Text        string `json:"text"`
	Reference   string `json:"reference,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Culture     string `json:"culture,omitempty"`
	Options     string `json:"options,omitempty"`
	Occurrences int    `json:"occurrences,omitempty"`
}

// ExtractResponse lists the spans found.
type ExtractResponse struct {
	Culture   string                   `json:"culture"`
	Reference time.Time                `json:"reference"`
	Results   []datetime.ExtractResult `json:"results"`
}

// Entity is one resolved span.
type Entity struct {
	Start      int                 `json:"start"`
	Length     int                 `json:"length"`
	Text       string              `json:"text"`
	Type       datetime.EntityKind `json:"type"`
	TypeName   string              `json:"type_name"`
	Timex      string              `json:"timex,omitempty"`
	Resolution []map[string]string `json:"resolution"`
	RRule      string              `json:"rrule,omitempty"`
	Next       []time.Time         `json:"next,omitempty"`
}

// RecognizeResponse lists the resolved spans.
type RecognizeResponse struct {
	Culture   string    `json:"culture"`
	Reference time.Time `json:"reference"`
	Results   []Entity  `json:"results"`
}

// ErrorResponse wraps an API error.
type ErrorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

type prepared struct {
	rc  *observability.RequestContext
	rec *recognizer.Recognizer
	ref time.Time
	req RecognizeRequest
}

// prepare binds and validates a request. On failure the error response has
// already been written and the returned error is the result of writing it.
func (s *APIV1Service) prepare(c echo.Context, route string) (*prepared, error) {
	requestID := c.Request().Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Response().Header().Get(echo.HeaderXRequestID)
	}
	rc := observability.NewRequestContextWithID(s.Logger, requestID, route, "")
	c.Response().Header().Set(echo.HeaderXRequestID, rc.RequestID)

	var req RecognizeRequest
	if err := c.Bind(&req); err != nil {
		return nil, s.fail(c, rc, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "malformed request body"))
	}

	culture := req.Culture
	if culture == "" {
		culture = s.Profile.Culture
	}
	normalized, ok := recognizer.NormalizeCulture(culture)
	if !ok {
		return nil, s.fail(c, rc, apierrors.UnsupportedCulture(culture))
	}
	rc.Culture = normalized

	optStr := req.Options
	if optStr == "" {
		optStr = s.Profile.Options
	}
	opts, err := datetime.ParseOptions(optStr)
	if err != nil {
		return nil, s.fail(c, rc, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid options"))
	}

	if req.Occurrences < 0 || req.Occurrences > maxOccurrences {
		return nil, s.fail(c, rc, apierrors.InvalidArgument("occurrences must be between 0 and 100"))
	}

	ref, err := timezone.ParseReference(req.Reference, req.Timezone, s.now)
	if err != nil {
		return nil, s.fail(c, rc, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid reference"))
	}

	rec, err := s.recognizerFor(normalized, opts)
	if err != nil {
		return nil, s.fail(c, rc, apierrors.Internal(err))
	}
	return &prepared{rc: rc, rec: rec, ref: ref, req: req}, nil
}

func (s *APIV1Service) fail(c echo.Context, rc *observability.RequestContext, apiErr *apierrors.APIError) error {
	s.Metrics.RecordFailure(rc.Route)
	rc.Warn("request rejected",
		slog.String(observability.LogFieldErrorCode, string(apiErr.Code)),
		slog.String("message", apiErr.Error()))
	return c.JSON(apiErr.HTTPStatus(), ErrorResponse{Error: apiErr})
}

func (s *APIV1Service) done(p *prepared, entities int) {
	s.Metrics.RecordRequest(p.rc.Route, p.rc.Duration(), entities)
	p.rc.Info("request finished",
		slog.Int(observability.LogFieldTextLen, len(p.req.Text)),
		slog.Int(observability.LogFieldEntities, entities),
		slog.Int64(observability.LogFieldDuration, p.rc.DurationMs()))
}

// Extract handles POST /api/v1/extract.
func (s *APIV1Service) Extract(c echo.Context) error {
	p, err := s.prepare(c, routeExtract)
	if p == nil {
		return err
	}
	ctx := c.Request().Context()

	results := p.rec.Extract(ctx, p.req.Text, p.ref)
	if err := ctx.Err(); err != nil {
		return s.fail(c, p.rc, apierrors.ContextCanceled(err))
	}
	if results == nil {
		results = []datetime.ExtractResult{}
	}

	s.done(p, len(results))
	return c.JSON(http.StatusOK, ExtractResponse{
		Culture:   p.rc.Culture,
		Reference: p.ref,
		Results:   results,
	})
}

// Recognize handles POST /api/v1/recognize.
func (s *APIV1Service) Recognize(c echo.Context) error {
	p, err := s.prepare(c, routeRecognize)
	if p == nil {
		return err
	}
	ctx := c.Request().Context()

	prs := p.rec.Recognize(ctx, p.req.Text, p.ref)
	if err := ctx.Err(); err != nil {
		return s.fail(c, p.rc, apierrors.ContextCanceled(err))
	}

	entities := make([]Entity, 0, len(prs))
	for _, pr := range prs {
		entities = append(entities, toEntity(pr, p.ref, p.req.Occurrences))
	}

	s.done(p, len(entities))
	return c.JSON(http.StatusOK, RecognizeResponse{
		Culture:   p.rc.Culture,
		Reference: p.ref,
		Results:   entities,
	})
}

func toEntity(pr datetime.ParseResult, ref time.Time, occurrences int) Entity {
	res := pr.Resolution()
	if res == nil {
		res = []map[string]string{}
	}
	e := Entity{
		Start:      pr.Start,
		Length:     pr.Length,
		Text:       pr.Text,
		Type:       pr.Kind,
		TypeName:   pr.TypeName(),
		Timex:      pr.TimexStr,
		Resolution: res,
	}
	if pr.Kind == datetime.KindSet && pr.TimexStr != "" {
		// Compound recurrences have no rule and are reported without one.
		if rule, next, err := rrule.Expand(pr.TimexStr, ref, occurrences); err == nil {
			e.RRule = rule.String()
			e.Next = next
		}
	}
	return e
}

// CulturesResponse lists the supported cultures.
type CulturesResponse struct {
	Cultures []string `json:"cultures"`
	Default  string   `json:"default"`
}

// ListCultures handles GET /api/v1/cultures.
func (s *APIV1Service) ListCultures(c echo.Context) error {
	return c.JSON(http.StatusOK, CulturesResponse{
		Cultures: recognizer.Cultures(),
		Default:  s.Profile.Culture,
	})
}
