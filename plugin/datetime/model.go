// Package datetime recognizes date, time, duration and recurrence
// expressions in free text and resolves them into TIMEX strings and
// concrete calendar values.
//
// Extraction and resolution are split: extractors locate typed spans
// (ExtractResult) and parsers turn a span into a ParseResult carrying a
// dual-valued resolution. Everything locale specific lives in a
// LocaleConfig built once per culture and shared read-only.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

// EntityKind is the closed set of entity types.
type EntityKind string

const (
	KindDate           EntityKind = "date"
	KindTime           EntityKind = "time"
	KindDateTime       EntityKind = "datetime"
	KindDatePeriod     EntityKind = "daterange"
	KindTimePeriod     EntityKind = "timerange"
	KindDateTimePeriod EntityKind = "datetimerange"
	KindDuration       EntityKind = "duration"
	KindSet            EntityKind = "set"
	KindHoliday        EntityKind = "holiday"
	KindTimeZone       EntityKind = "timezone"
	KindDateTimeAlt    EntityKind = "datetimealt"
)

// Options is a bit set of recognizer switches.
type Options uint32

// OptionsNone enables the default grammar only.
const OptionsNone Options = 0

const (
	SkipFromToMerge Options = 1 << iota
	NoProtoCache
	CalendarMode
	ExtendedTypes
	EnablePreview
)

var optionNames = []struct {
	flag Options
	name string
}{
	{SkipFromToMerge, "SkipFromToMerge"},
	{NoProtoCache, "NoProtoCache"},
	{CalendarMode, "CalendarMode"},
	{ExtendedTypes, "ExtendedTypes"},
	{EnablePreview, "EnablePreview"},
}

// Has reports whether every bit of flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

func (o Options) String() string {
	if o == OptionsNone {
		return "None"
	}
	var names []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseOptions reads a comma or pipe separated list of option names.
func ParseOptions(s string) (Options, error) {
	var o Options
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' || r == ' ' }) {
		found := false
		for _, n := range optionNames {
			if strings.EqualFold(n.name, f) {
				o |= n.flag
				found = true
				break
			}
		}
		if !found && !strings.EqualFold(f, "None") {
			return o, fmt.Errorf("unknown option %q", f)
		}
	}
	return o, nil
}

// ModTag qualifies a resolved entity without changing its arithmetic.
type ModTag string

const (
	ModNone   ModTag = ""
	ModBefore ModTag = "before"
	ModAfter  ModTag = "after"
	ModSince  ModTag = "since"
	// ModMore and ModLess qualify durations ("more than 2 weeks").
	ModMore ModTag = "more"
	ModLess ModTag = "less"
	// ModStart, ModMid and ModEnd narrow a period ("early May", "late 2016").
	ModStart ModTag = "start"
	ModMid   ModTag = "mid"
	ModEnd   ModTag = "end"
)

// Metadata carries flags attached while extracting.
type Metadata struct {
	IsMealtime                bool `json:"isMealtime,omitempty"`
	PossiblyIncludesPeriodEnd bool `json:"possiblyIncludesPeriodEnd,omitempty"`
	IsHoliday                 bool `json:"isHoliday,omitempty"`
	// IsTimeOverride marks a bare number reinterpreted as a time
	// ("move the 3pm meeting to 4").
	IsTimeOverride bool `json:"isTimeOverride,omitempty"`
	// Mod and ModLength describe a qualifying cue absorbed into the span.
	// The cue is a prefix unless ModSuffix is set.
	Mod       ModTag `json:"mod,omitempty"`
	ModLength int    `json:"modLength,omitempty"`
	ModSuffix bool   `json:"modSuffix,omitempty"`
}

func (m *Metadata) merge(o *Metadata) *Metadata {
	if o == nil {
		return m
	}
	if m == nil {
		c := *o
		return &c
	}
	c := *m
	c.IsMealtime = c.IsMealtime || o.IsMealtime
	c.PossiblyIncludesPeriodEnd = c.PossiblyIncludesPeriodEnd || o.PossiblyIncludesPeriodEnd
	c.IsHoliday = c.IsHoliday || o.IsHoliday
	c.IsTimeOverride = c.IsTimeOverride || o.IsTimeOverride
	if c.Mod == ModNone {
		c.Mod, c.ModLength, c.ModSuffix = o.Mod, o.ModLength, o.ModSuffix
	}
	return &c
}

// ExtraData is the closed set of payloads an ExtractResult may carry.
type ExtraData interface {
	isExtraData()
}

// InequalityData tags a duration preceded by "more than", "less than"...
type InequalityData struct {
	Mod ModTag
}

// CompoundKind classifies a compound duration by unit granularity.
type CompoundKind string

const (
	CompoundDate  CompoundKind = "date"
	CompoundTime  CompoundKind = "time"
	CompoundMixed CompoundKind = "mixed"
)

// CompoundDurationData marks a duration built from several unit tokens.
type CompoundDurationData struct {
	Kind  CompoundKind
	Parts []ExtractResult
}

// AltInherit says which part of the leading entity an alternative borrows.
type AltInherit string

const (
	InheritNone         AltInherit = ""
	InheritDate         AltInherit = "date"
	InheritAmPm         AltInherit = "ampm"
	InheritRelativeWeek AltInherit = "relative_week"
	InheritPeriodUnit   AltInherit = "period_unit"
)

// AltContext is attached to DateTimeAlt results.
type AltContext struct {
	OriginalKind EntityKind
	Inherit      AltInherit
	// ContextText is the borrowed fragment: a date phrase, "pm", "next week"
	// or a period unit.
	ContextText string
	ContextKind EntityKind
}

// TimeZoneData records a zone merged into a time-bearing entity.
type TimeZoneData struct {
	Zone ExtractResult
}

func (InequalityData) isExtraData()       {}
func (CompoundDurationData) isExtraData() {}
func (AltContext) isExtraData()           {}
func (TimeZoneData) isExtraData()         {}

// ExtractResult is a typed span of the input. Start and Length are byte
// offsets into the UTF-8 input, so Text == input[Start:Start+Length].
type ExtractResult struct {
	Start    int
	Length   int
	Text     string
	Kind     EntityKind
	Data     ExtraData
	Metadata *Metadata
}

// End is the exclusive end offset.
func (er ExtractResult) End() int {
	return er.Start + er.Length
}

// Overlaps reports whether the spans share at least one byte.
func (er ExtractResult) Overlaps(o ExtractResult) bool {
	return er.Start < o.End() && o.Start < er.End()
}

// Covers reports whether er's span contains o's span.
func (er ExtractResult) Covers(o ExtractResult) bool {
	return er.Start <= o.Start && er.End() >= o.End()
}

// StrictlyCovers reports whether er's span contains o's span and is longer.
func (er ExtractResult) StrictlyCovers(o ExtractResult) bool {
	return er.Covers(o) && er.Length > o.Length
}

func (er ExtractResult) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", er.Kind, er.Text, er.Start, er.End())
}

// spanOf builds a result covering text[start:end].
func spanOf(text string, start, end int, kind EntityKind) ExtractResult {
	return ExtractResult{Start: start, Length: end - start, Text: text[start:end], Kind: kind}
}

// ValueKind tags a TemporalValue.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInstant
	ValueRange
	ValueDuration
	ValueSet
)

// TemporalValue is one candidate resolution.
type TemporalValue struct {
	Kind    ValueKind
	Start   time.Time // instant, or range start
	End     time.Time // range end (exclusive)
	Seconds float64   // duration length
	Expr    string    // recurrence expression for sets
}

// Instant builds a point value.
func Instant(t time.Time) TemporalValue {
	return TemporalValue{Kind: ValueInstant, Start: t}
}

// Range builds an interval value.
func Range(start, end time.Time) TemporalValue {
	return TemporalValue{Kind: ValueRange, Start: start, End: end}
}

// DurationSeconds builds a length value.
func DurationSeconds(s float64) TemporalValue {
	return TemporalValue{Kind: ValueDuration, Seconds: s}
}

// SetValue builds a recurrence value.
func SetValue(expr string) TemporalValue {
	return TemporalValue{Kind: ValueSet, Expr: expr}
}

// Equal compares two values.
func (v TemporalValue) Equal(o TemporalValue) bool {
	return v.Kind == o.Kind && v.Start.Equal(o.Start) && v.End.Equal(o.End) &&
		v.Seconds == o.Seconds && v.Expr == o.Expr
}

// TimeZoneResolution is the resolved offset of a time zone mention.
type TimeZoneResolution struct {
	Value         string `json:"value"`
	UTCOffsetMins int    `json:"utcOffsetMins"`
}

// ResolutionResult is the outcome of one successful rule.
type ResolutionResult struct {
	Timex       string
	FutureValue TemporalValue
	PastValue   TemporalValue
	Success     bool
	IsLunar     bool
	Comment     string
	Mod         ModTag
	TimeZone    *TimeZoneResolution
}

// Comments recognised by the resolution renderer.
const (
	CommentAmPm = "ampm"
)

// ParseResult is an ExtractResult together with its resolution. Value is
// nil only when no rule could interpret the span.
type ParseResult struct {
	ExtractResult
	Value         *ResolutionResult
	TimexStr      string
	ResolutionStr string
}
