package datetime

import (
	"encoding/json"
	"strconv"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"

	typePrefix = "datetimeV2."
)

// rangeKindOf is the range kind a point kind turns into under a
// before/after/since cue.
var rangeKindOf = map[EntityKind]EntityKind{
	KindDate:     KindDatePeriod,
	KindTime:     KindTimePeriod,
	KindDateTime: KindDateTimePeriod,
}

// renderKind is the kind the result is reported as.
func (pr ParseResult) renderKind() EntityKind {
	k := pr.baseKind()
	if pr.Value != nil && pointMod(pr.Value.Mod) {
		if r, ok := rangeKindOf[k]; ok {
			k = r
		}
	}
	return k
}

func pointMod(m ModTag) bool {
	return m == ModBefore || m == ModAfter || m == ModSince
}

// TypeName is the reported type, such as "datetimeV2.date" or
// "datetimeV2.daterange" for "before May 5".
func (pr ParseResult) TypeName() string {
	return typePrefix + string(pr.renderKind())
}

// Resolution renders the value as string maps, one per distinct candidate,
// the past candidate first. It is nil for an unresolved result.
func (pr ParseResult) Resolution() []map[string]string {
	v := pr.Value
	if v == nil {
		return nil
	}
	kind := pr.renderKind()

	if pr.Kind == KindTimeZone {
		if v.TimeZone == nil {
			return nil
		}
		return []map[string]string{{
			"type":          string(KindTimeZone),
			"value":         v.TimeZone.Value,
			"utcOffsetMins": strconv.Itoa(v.TimeZone.UTCOffsetMins),
		}}
	}

	candidates := []TemporalValue{v.PastValue, v.FutureValue}
	if v.PastValue.Equal(v.FutureValue) {
		candidates = candidates[1:]
	}
	out := make([]map[string]string, 0, len(candidates))
	for _, c := range candidates {
		m := map[string]string{
			"timex": v.Timex,
			"type":  string(kind),
		}
		pr.renderValue(m, c, v.Mod)
		if v.Mod != ModNone {
			m["Mod"] = string(v.Mod)
		}
		if v.Comment != "" {
			m["comment"] = v.Comment
		}
		if v.IsLunar {
			m["isLunar"] = "true"
		}
		if v.TimeZone != nil {
			m["timezone"] = v.TimeZone.Value
			m["utcOffsetMins"] = strconv.Itoa(v.TimeZone.UTCOffsetMins)
		}
		out = append(out, m)
	}
	return out
}

func (pr ParseResult) renderValue(m map[string]string, c TemporalValue, mod ModTag) {
	layout := layoutFor(pr.baseKind())
	switch c.Kind {
	case ValueInstant:
		s := c.Start.Format(layout)
		switch mod {
		case ModBefore:
			m["end"] = s
		case ModAfter, ModSince:
			m["start"] = s
		default:
			m["value"] = s
		}
	case ValueRange:
		start, end := c.Start.Format(layout), c.End.Format(layout)
		switch mod {
		case ModBefore:
			m["end"] = start
		case ModAfter:
			m["start"] = end
		case ModSince:
			m["start"] = start
		default:
			m["start"], m["end"] = start, end
		}
	case ValueDuration:
		m["value"] = timex.FormatNumber(c.Seconds)
	case ValueSet:
		m["value"] = "not resolved"
	}
}

// baseKind is the kind before any cue widened it to a range.
func (pr ParseResult) baseKind() EntityKind {
	switch pr.Kind {
	case KindHoliday:
		return KindDate
	case KindDateTimeAlt:
		if ctx, ok := pr.Data.(AltContext); ok {
			return ctx.OriginalKind
		}
	}
	return pr.Kind
}

func layoutFor(k EntityKind) string {
	switch k {
	case KindDate, KindDatePeriod:
		return dateLayout
	case KindTime, KindTimePeriod:
		return timeLayout
	}
	return dateTimeLayout
}

func (pr ParseResult) renderJSON() string {
	b, err := json.Marshal(map[string]any{"values": pr.Resolution()})
	if err != nil {
		return ""
	}
	return string(b)
}
