package datetime

import (
	"regexp"
	"strings"
	"time"
)

// IntegerParser turns a cardinal number phrase ("twenty one", "二十一",
// "21") into an int.
type IntegerParser interface {
	ParseInt(s string) (int, bool)
}

// OrdinalParser turns an ordinal phrase ("third", "3rd", "第三") into an int.
type OrdinalParser interface {
	ParseOrdinal(s string) (int, bool)
}

// LocaleConfig is everything culture specific. It is built once per
// culture and only read afterwards, so it can be shared across goroutines.
//
// Any regex field may be nil; the rule using it then simply yields nothing.
type LocaleConfig struct {
	Culture string
	// TwoDigitYearPivot maps yy >= pivot to 19yy and yy < pivot to 20yy.
	TwoDigitYearPivot int

	Integers IntegerParser
	Ordinals OrdinalParser

	MonthOfYear map[string]int
	DayOfWeek   map[string]time.Weekday
	// UnitMap maps unit words to timex units (timex.UnitDay, ...).
	UnitMap map[string]string
	// DayOffsets maps "today", "tomorrow", "后天" ... to a day delta.
	DayOffsets map[string]int
	// RelativeMap maps "this", "next", "last", "下", "上" ... to a step.
	RelativeMap map[string]int
	// CardinalMap maps "first" ... "last" to 1..5 for nth-weekday rules.
	CardinalMap map[string]int
	// Capabilities records grammar switches that differ between cultures.
	Capabilities Capabilities

	Range          RangeConfig
	Date           DateConfig
	Time           TimeConfig
	Duration       DurationConfig
	Holiday        HolidayConfig
	TimeZone       TimeZoneConfig
	Set            SetConfig
	DateTime       DateTimeConfig
	DatePeriod     DatePeriodConfig
	TimePeriod     TimePeriodConfig
	DateTimePeriod DateTimePeriodConfig
	Merged         MergedConfig
	Alt            AltConfig
}

// Capabilities are culture dependent grammar switches.
type Capabilities struct {
	// CheckBothBeforeAfter looks for relative-duration cue words on both
	// sides of a duration ("in 3 days" as well as "3 days later"). Cultures
	// without it only honour the suffix form.
	CheckBothBeforeAfter bool
	// SetEachDayGuard restricts the cue around a clock time in a recurrence
	// to EachDayRegex. Without it a periodic word meaning daily ("daily",
	// "每日") is accepted as well.
	SetEachDayGuard bool
}

// RangeConfig holds connectors shared by every period extractor.
type RangeConfig struct {
	// FromRegex and BetweenRegex match at the end of the text preceding the
	// first point.
	FromRegex    *regexp.Regexp
	BetweenRegex *regexp.Regexp
	// TillRegex and AndRegex must match the whole gap between two points.
	TillRegex *regexp.Regexp
	AndRegex  *regexp.Regexp
	// InclusiveRegex marks till connectors that take in the second point
	// ("Monday through Friday").
	InclusiveRegex *regexp.Regexp
}

// DateConfig drives date extraction and parsing.
type DateConfig struct {
	// DateRegexes are explicit dates with year/month/day/weekday groups.
	DateRegexes []*regexp.Regexp
	// SpecialDayRegex matches DayOffsets words in its "day" group.
	SpecialDayRegex *regexp.Regexp
	// RelativeWeekdayRegex: "next Tuesday", "next week on Tuesday", "下周二".
	RelativeWeekdayRegex *regexp.Regexp
	// WeekdayRegex is a bare weekday.
	WeekdayRegex *regexp.Regexp
	// OnRegex is a bare day of month: "the 13th", "13号".
	OnRegex *regexp.Regexp
	// WeekdayDayRegex pins a day of month with its weekday: "Friday the
	// 13th", "13号星期五"; groups weekday, day and an optional year.
	WeekdayDayRegex *regexp.Regexp
	// WeekdayOfMonthRegex: "third Thursday of November".
	WeekdayOfMonthRegex *regexp.Regexp
	// AgoRegex and LaterRegex follow a duration ("3 days ago").
	AgoRegex   *regexp.Regexp
	LaterRegex *regexp.Regexp
	// InRegex precedes a duration ("in 3 weeks").
	InRegex *regexp.Regexp
	// BeforeAfterRegex links a duration to a following date
	// ("3 days after next Tuesday"); group "dir" is looked up in
	// BeforeAfterMap.
	BeforeAfterRegex *regexp.Regexp
	BeforeAfterMap   map[string]int
	// LunarRegex flags lunar calendar expressions.
	LunarRegex *regexp.Regexp
}

// TimeConfig drives time extraction and parsing.
type TimeConfig struct {
	// TimeRegexes use hour/min/sec/desc groups plus half, quarter, to and
	// special.
	TimeRegexes []*regexp.Regexp
	AMRegex     *regexp.Regexp
	PMRegex     *regexp.Regexp
	// MidDayRegex marks descriptors such as 中午 where small hours are pm.
	MidDayRegex *regexp.Regexp
	// SpecialTimes maps "noon", "midnight" ... to an hour.
	SpecialTimes map[string]int
	// QuarterMap maps the quarter group ("quarter", "一刻") to minutes.
	QuarterMap map[string]int
}

// DurationConfig drives duration extraction and parsing.
type DurationConfig struct {
	// DurationRegexes use num/unit and optional half/halfonly groups.
	DurationRegexes []*regexp.Regexp
	// HalfSuffixRegex is "and a half" following a duration.
	HalfSuffixRegex *regexp.Regexp
	// CompoundConnectorRegex must match the whole gap between two parts of
	// a compound duration.
	CompoundConnectorRegex *regexp.Regexp
	// MoreThanRegex and LessThanRegex match at the end of the preceding text.
	MoreThanRegex *regexp.Regexp
	LessThanRegex *regexp.Regexp
	// SpecialNumbers maps "num" group words such as "an" or "a couple of"
	// that no integer parser reads.
	SpecialNumbers map[string]float64
	// CalendarRegex matches whole spans that name a calendar period rather
	// than a length ("2016年", "五月"); such durations are dropped.
	CalendarRegex *regexp.Regexp
}

// HolidayRule computes a holiday for a given year.
type HolidayRule struct {
	Month, Day int
	Compute    func(year int, loc *time.Location) time.Time
	Lunar      bool
}

// On returns the holiday date in year.
func (r HolidayRule) On(year int, loc *time.Location) (time.Time, bool) {
	if r.Compute != nil {
		return r.Compute(year, loc), true
	}
	t := time.Date(year, time.Month(r.Month), r.Day, 0, 0, 0, 0, loc)
	return t, int(t.Month()) == r.Month
}

// HolidayConfig drives holiday extraction and parsing.
type HolidayConfig struct {
	// HolidayRegexes use holiday plus optional year or rel groups.
	HolidayRegexes []*regexp.Regexp
	// Holidays is keyed by NormalizeHoliday(name).
	Holidays map[string]HolidayRule
	// YearRelMap maps "this year", "明年" ... to a year delta.
	YearRelMap map[string]int
}

// NormalizeHoliday lower-cases a holiday name and drops everything that
// is not a letter, so "Mother's Day" and "mothers day" share a key.
func NormalizeHoliday(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '\'' || r == '’' || r == ' ' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TimeZoneConfig drives time zone extraction and parsing.
type TimeZoneConfig struct {
	// OffsetRegex is an explicit UTC offset with sign and offset groups.
	OffsetRegex *regexp.Regexp
	// ZoneRegexes carry a zone or city group looked up in ZoneOffsets.
	ZoneRegexes []*regexp.Regexp
	// ZoneOffsets is keyed by lower-cased zone or city name, in minutes.
	ZoneOffsets map[string]int
}

// SetConfig drives recurrence extraction and parsing.
type SetConfig struct {
	// PeriodicRegex matches PeriodicMap words: "daily", "每天".
	PeriodicRegex *regexp.Regexp
	PeriodicMap   map[string]string
	// EachUnitRegex: "every 2 weeks", "every other day"; groups num, other,
	// unit.
	EachUnitRegex *regexp.Regexp
	// EachPrefixRegex matches at the end of text preceding another entity.
	EachPrefixRegex *regexp.Regexp
	// EachDayRegex is "every day"/"daily" around a time.
	EachDayRegex *regexp.Regexp
	// WeekdaysRegex is a plural weekday: "mondays".
	WeekdaysRegex *regexp.Regexp
}

// DateTimeConfig drives date-time extraction and parsing.
type DateTimeConfig struct {
	// NowRegex matches NowMap words.
	NowRegex *regexp.Regexp
	NowMap   map[string]string
	// ConnectorRegex must match the whole gap between a date and a time.
	ConnectorRegex *regexp.Regexp
	// YearSuffixRegex is a year trailing a composite that has none:
	// "May 3 at 3pm, 2025"; group year.
	YearSuffixRegex *regexp.Regexp
}

// TimeOfDay is a named part of the day.
type TimeOfDay struct {
	Timex     string
	StartHour int
	EndHour   int
}

// DatePeriodConfig drives date period extraction and parsing.
type DatePeriodConfig struct {
	// SimpleCasesRegex: "May 5-10"; groups month, day1, day2, year.
	SimpleCasesRegex *regexp.Regexp
	// MonthWithYearRegex: "May 2016"; groups month, year, rel.
	MonthWithYearRegex *regexp.Regexp
	// MonthRegex: a bare month name.
	MonthRegex *regexp.Regexp
	// YearRegex: "in 2016", "2016年"; group year.
	YearRegex *regexp.Regexp
	// BareYearRegex: a year on its own, "2016"; group year. Matches glued
	// to digits, letters or dashes are ignored.
	BareYearRegex *regexp.Regexp
	// YearSuffixRegex is a year trailing a period that has none:
	// "summer, 2025"; group year.
	YearSuffixRegex *regexp.Regexp
	// RelativeYearRegex: "今年", "明年"; group rel looked up in YearRelMap.
	RelativeYearRegex *regexp.Regexp
	YearRelMap        map[string]int
	// RelativePeriodRegex: "next week"; groups rel, unit.
	RelativePeriodRegex *regexp.Regexp
	// WeekendRegex: "this weekend"; group rel.
	WeekendRegex *regexp.Regexp
	// WeekOfMonthRegex: "the first week of May"; groups cardinal, month, rel.
	WeekOfMonthRegex *regexp.Regexp
	// QuarterRegex: groups cardinal or quarter, year, rel.
	QuarterRegex *regexp.Regexp
	// HalfYearRegex: "上半年"; groups halfyear, year, rel.
	HalfYearRegex *regexp.Regexp
	HalfYearMap   map[string]int
	// SeasonRegex: groups season, year, rel.
	SeasonRegex *regexp.Regexp
	SeasonMap   map[string]string
	// RelativeNumberRegex: "next 3 days"; groups rel, num, unit.
	RelativeNumberRegex *regexp.Regexp
	// YearRangeRegex: "between 2016 and 2018"; groups year1, year2.
	YearRangeRegex *regexp.Regexp
	// EarlyRegex, MidRegex and LateRegex precede a month or year period.
	EarlyRegex *regexp.Regexp
	MidRegex   *regexp.Regexp
	LateRegex  *regexp.Regexp
	// DekadRegex follows a month: "上旬"; group dekad looked up in DekadMap.
	DekadRegex *regexp.Regexp
	DekadMap   map[string]ModTag
}

// TimePeriodConfig drives time period extraction and parsing.
type TimePeriodConfig struct {
	// PureNumberRangeRegex: "3-5pm", "from 3:30 to 5 pm"; groups hour1,
	// min1, desc1, hour2, min2, desc2.
	PureNumberRangeRegex *regexp.Regexp
	// TimeOfDayRegex matches TimeOfDayMap words.
	TimeOfDayRegex *regexp.Regexp
	TimeOfDayMap   map[string]TimeOfDay
	// DuringTheDayRegex is only honoured in calendar mode.
	DuringTheDayRegex *regexp.Regexp
}

// DateTimePeriodConfig drives date-time period extraction and parsing.
type DateTimePeriodConfig struct {
	// SpecificTimeOfDayRegex matches SpecificTimeOfDayMap words: "tonight".
	SpecificTimeOfDayRegex *regexp.Regexp
	SpecificTimeOfDayMap   map[string]SpecificTimeOfDay
	// ConnectorRegex must match the whole gap between a date and a part of
	// the day or a time range.
	ConnectorRegex *regexp.Regexp
	// RelativeTimeUnitRegex: "next 5 minutes"; groups rel, num, unit.
	RelativeTimeUnitRegex *regexp.Regexp
}

// SpecificTimeOfDay is a lexicalised day plus part of the day.
type SpecificTimeOfDay struct {
	DayOffset int
	TimeOfDay string
}

// AmbiguityFilter drops a result whose text matches Span when Context
// matches the input around it.
type AmbiguityFilter struct {
	Span    *regexp.Regexp
	Context *regexp.Regexp
}

// MergedConfig drives the ensemble passes.
type MergedConfig struct {
	// Before/After/Since prefix regexes match at the end of the preceding
	// text; suffix regexes match at the start of the following text.
	BeforeRegex       *regexp.Regexp
	AfterRegex        *regexp.Regexp
	SinceRegex        *regexp.Regexp
	BeforeSuffixRegex *regexp.Regexp
	AfterSuffixRegex  *regexp.Regexp
	SinceSuffixRegex  *regexp.Regexp
	// NumberEndingRegex follows a time: " meeting to 4"; group newTime.
	NumberEndingRegex *regexp.Regexp
	AmbiguityFilters  []AmbiguityFilter
	SuperfluousWords  []string
}

// AltConfig drives the alternation pass.
type AltConfig struct {
	// OrRegex must match the whole gap between two alternatives.
	OrRegex *regexp.Regexp
	// RelativeWeekPrefixRegex finds the "next week" context of a date;
	// group prefix.
	RelativeWeekPrefixRegex *regexp.Regexp
	// RelativePeriodRegex recognises a leading "this week"; group unit.
	RelativePeriodRegex *regexp.Regexp
	// OrRelativeRegex is the dangling " or next"; group rel.
	OrRelativeRegex *regexp.Regexp
}
