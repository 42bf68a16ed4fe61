// Package english is the en-us locale of the datetime recognizer.
package english

import (
	"regexp"
	"sync"
	"time"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/number"
	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// Culture is the culture code served by this package.
const Culture = "en-us"

// Config returns the shared English locale. It is built on first use.
var Config = sync.OnceValue(build)

// re compiles a case-insensitive pattern.
func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

func build() *datetime.LocaleConfig {
	relMap := map[string]int{
		"this":      0,
		"current":   0,
		"next":      1,
		"coming":    1,
		"upcoming":  1,
		"following": 1,
		"last":      -1,
		"past":      -1,
		"previous":  -1,
	}
	yearRel := map[string]int{
		"this":          0,
		"next":          1,
		"last":          -1,
		"previous":      -1,
		"this year":     0,
		"next year":     1,
		"last year":     -1,
		"previous year": -1,
	}
	timeOfDay := map[string]datetime.TimeOfDay{
		"morning":        {Timex: timex.Morning, StartHour: 8, EndHour: 12},
		"afternoon":      {Timex: timex.Afternoon, StartHour: 12, EndHour: 16},
		"evening":        {Timex: timex.Evening, StartHour: 16, EndHour: 20},
		"night":          {Timex: timex.Night, StartHour: 20, EndHour: 23},
		"business hours": {Timex: timex.Business, StartHour: 8, EndHour: 18},
	}

	return &datetime.LocaleConfig{
		Culture:           Culture,
		TwoDigitYearPivot: 40,
		Integers:          number.English{},
		Ordinals:          number.English{},

		MonthOfYear: map[string]int{
			"january": 1, "jan": 1,
			"february": 2, "feb": 2,
			"march": 3, "mar": 3,
			"april": 4, "apr": 4,
			"may":  5,
			"june": 6, "jun": 6,
			"july": 7, "jul": 7,
			"august": 8, "aug": 8,
			"september": 9, "sept": 9, "sep": 9,
			"october": 10, "oct": 10,
			"november": 11, "nov": 11,
			"december": 12, "dec": 12,
		},
		DayOfWeek: map[string]time.Weekday{
			"monday": time.Monday, "mon": time.Monday,
			"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
			"wednesday": time.Wednesday, "wed": time.Wednesday,
			"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
			"friday": time.Friday, "fri": time.Friday,
			"saturday": time.Saturday, "sat": time.Saturday,
			"sunday": time.Sunday, "sun": time.Sunday,
		},
		UnitMap: map[string]string{
			"year": timex.UnitYear, "years": timex.UnitYear, "yr": timex.UnitYear, "yrs": timex.UnitYear,
			"month": timex.UnitMonth, "months": timex.UnitMonth,
			"week": timex.UnitWeek, "weeks": timex.UnitWeek, "wk": timex.UnitWeek, "wks": timex.UnitWeek,
			"day": timex.UnitDay, "days": timex.UnitDay,
			"hour": timex.UnitHour, "hours": timex.UnitHour, "hr": timex.UnitHour, "hrs": timex.UnitHour,
			"minute": timex.UnitMinute, "minutes": timex.UnitMinute, "min": timex.UnitMinute, "mins": timex.UnitMinute,
			"second": timex.UnitSecond, "seconds": timex.UnitSecond, "sec": timex.UnitSecond, "secs": timex.UnitSecond,
		},
		DayOffsets: map[string]int{
			"today":                    0,
			"tomorrow":                 1,
			"tmr":                      1,
			"tmrw":                     1,
			"yesterday":                -1,
			"day after tomorrow":       2,
			"the day after tomorrow":   2,
			"day before yesterday":     -2,
			"the day before yesterday": -2,
		},
		RelativeMap: relMap,
		CardinalMap: map[string]int{
			"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5, "last": 5,
		},
		Capabilities: datetime.Capabilities{
			CheckBothBeforeAfter: true,
			SetEachDayGuard:      true,
		},

		Range: datetime.RangeConfig{
			FromRegex:      re(`\b(?:from|starting\s+from)\s*`),
			BetweenRegex:   re(`\bbetween\s*`),
			TillRegex:      re(`(?:to|till|til|until|through|thru|-|–|~)`),
			AndRegex:       re(`(?:and|&)`),
			InclusiveRegex: re(`(?:through|thru)`),
		},

		Date: datetime.DateConfig{
			DateRegexes: []*regexp.Regexp{
				re(`\b(?P<year>` + year4 + `)[-/](?P<month>1[0-2]|0?[1-9])[-/](?P<day>3[01]|[12]\d|0?[1-9])\b`),
				re(`\b(?:(?P<weekday>` + weekdaysAbb + `)\.?\s*,?\s+)?(?P<month>` + months + `)\.?\s+(?P<day>(?:the\s+)?` + dayNum + `|(?:the\s+)?(?:` + ordWords + `))\b(?:\s*,?\s*(?P<year>` + year4 + `)\b)?`),
				re(`\b(?:(?P<weekday>` + weekdaysAbb + `)\s*,?\s+)?(?:the\s+)?(?P<day>` + dayNum + `|` + ordWords + `)\s+(?:of\s+)?(?P<month>` + months + `)\b(?:\s*,?\s*(?P<year>` + year4 + `)\b)?`),
				re(`\b(?P<month>1[0-2]|0?[1-9])/(?P<day>3[01]|[12]\d|0?[1-9])(?:/(?P<year>\d{4}|\d{2}))?\b`),
			},
			SpecialDayRegex:      re(`\b(?P<day>(?:the\s+)?day\s+after\s+tomorrow|(?:the\s+)?day\s+before\s+yesterday|today|tomorrow|tmrw|tmr|yesterday)\b`),
			RelativeWeekdayRegex: re(`\b(?P<rel>` + relWord + `)\s+(?:week\s+(?:on\s+)?)?(?P<weekday>` + weekdays + `)\b`),
			WeekdayRegex:         re(`\b(?:on\s+)?(?P<weekday>` + weekdays + `|tues|thurs)\b`),
			OnRegex:              re(`\b(?P<day>(?:the\s+)?(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)|the\s+(?:` + ordWords + `))\b`),
			WeekdayDayRegex:      re(`\b(?P<weekday>` + weekdaysAbb + `)\.?\s*,?\s+(?P<day>(?:the\s+)?(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)|the\s+(?:` + ordWords + `))\b(?:\s*,?\s*(?P<year>` + year4 + `)\b)?`),
			WeekdayOfMonthRegex:  re(`\b(?:the\s+)?(?P<cardinal>` + cardinals + `)\s+(?P<weekday>` + weekdays + `)\s+(?:of|in)\s+(?:(?P<rel>this|next|last)\s+month|(?P<month>` + months + `)(?:\s*,?\s*(?P<year>` + year4 + `))?)\b`),
			AgoRegex:             re(`\s*(?:ago|before\s+now|earlier)\b`),
			LaterRegex:           re(`\s*(?:later|from\s+now|hence|after\s+now)\b`),
			InRegex:              re(`\bin\s*`),
			BeforeAfterRegex:     re(`\s*(?P<dir>before|after|from)\s+`),
			BeforeAfterMap:       map[string]int{"before": -1, "after": 1, "from": 1},
		},

		Time: datetime.TimeConfig{
			TimeRegexes: []*regexp.Regexp{
				re(`\b(?:at\s+)?(?P<hour>2[0-4]|[01]?\d):(?P<min>[0-5]\d)(?::(?P<sec>[0-5]\d))?(?:\s*(?P<desc>` + desc + `))?`),
				re(`\b(?:at\s+)?(?P<hour>1[0-2]|0?[1-9])\s*(?P<desc>` + desc + `)`),
				re(`\b(?:at\s+)?(?P<hour>1[0-2]|0?[1-9]|` + hourWords + `)\s+o['’]?clock\b(?:\s*(?P<desc>` + desc + `))?`),
				re(`\b(?:at\s+)?(?:(?P<half>half)|(?:a\s+)?(?P<quarter>quarter)|(?P<min>twenty[\s-]five|twenty|ten|five)(?:\s+minutes?)?)\s+(?:past|after|(?P<to>to|till|before))\s+(?P<hour>1[0-2]|0?[1-9]|` + hourWords + `)\b(?:\s*(?P<desc>` + desc + `))?`),
				re(`\b(?:at\s+)?(?P<special>noon|midday|mid-day|midnight|mid-night)\b`),
				re(`\b(?:at\s+)?(?P<mealtime>(?P<special>lunchtime|lunch\s+time|dinnertime|dinner\s+time|breakfast\s+time))\b`),
				re(`\bat\s+(?P<hour>2[0-3]|1\d|0?\d)\b`),
			},
			AMRegex: re(`\b(?:a\.?m|morning)`),
			PMRegex: re(`\b(?:p\.?m|afternoon|evening|night)`),
			SpecialTimes: map[string]int{
				"noon":           12,
				"midday":         12,
				"mid-day":        12,
				"midnight":       0,
				"mid-night":      0,
				"lunchtime":      12,
				"lunch time":     12,
				"dinnertime":     19,
				"dinner time":    19,
				"breakfast time": 8,
			},
			QuarterMap: map[string]int{"quarter": 15},
		},

		Duration: datetime.DurationConfig{
			DurationRegexes: []*regexp.Regexp{
				re(`\b(?P<num>\d+(?:\.\d+)?|` + numWords + `|an|a|a\s+couple\s+of|a\s+few|several)\s*(?P<unit>` + durationUnits + `)\b`),
				re(`\b(?P<num>\d+|` + numWords + `|an|a)\s+(?P<half>and\s+a\s+half)\s+(?P<unit>` + durationUnits + `)\b`),
				re(`\b(?P<halfonly>half)\s+(?:an?\s+)?(?P<unit>year|month|week|day|hour|minute)\b`),
			},
			HalfSuffixRegex:        re(`\s+and\s+a\s+half\b`),
			CompoundConnectorRegex: re(`(?:,|,?\s*and)`),
			MoreThanRegex:          re(`\b(?:more\s+than|over|at\s+least|longer\s+than|greater\s+than)\s+`),
			LessThanRegex:          re(`\b(?:less\s+than|under|at\s+most|fewer\s+than|shorter\s+than|up\s+to)\s+`),
			SpecialNumbers: map[string]float64{
				"a":           1,
				"an":          1,
				"a couple of": 2,
				"couple of":   2,
				"a few":       3,
				"few":         3,
				"several":     3,
			},
		},

		Holiday: datetime.HolidayConfig{
			HolidayRegexes: []*regexp.Regexp{
				re(`\b(?:(?P<rel>this|next|last)\s+)?(?P<holiday>` + holidayNames + `)\b(?:\s+(?:of\s+)?(?P<year>` + year4 + `)\b)?`),
			},
			Holidays:   holidays(),
			YearRelMap: yearRel,
		},

		TimeZone: datetime.TimeZoneConfig{
			OffsetRegex: re(`\b(?:utc|gmt)(?:\s*(?P<sign>[+-])\s*(?P<offset>\d{1,2}(?::?\d{2})?))?`),
			ZoneRegexes: []*regexp.Regexp{
				re(`\b(?P<zone>pacific\s+(?:standard\s+)?time|eastern\s+(?:standard\s+)?time|central\s+(?:standard\s+)?time|mountain\s+(?:standard\s+)?time|pst|pdt|mst|mdt|cst|cdt|est|edt|akst|hst|bst|cest|cet|eet|jst|kst|aedt|aest|nzst)\b`),
				re(`\b(?P<city>beijing|shanghai|hong\s+kong|singapore|tokyo|seoul|london|paris|berlin|moscow|dubai|new\s+york|chicago|los\s+angeles|sydney)\s+time\b`),
			},
			ZoneOffsets: map[string]int{
				"pacific time": -480, "pacific standard time": -480,
				"eastern time": -300, "eastern standard time": -300,
				"central time": -360, "central standard time": -360,
				"mountain time": -420, "mountain standard time": -420,
				"pst": -480, "pdt": -420,
				"mst": -420, "mdt": -360,
				"cst": -360, "cdt": -300,
				"est": -300, "edt": -240,
				"akst": -540, "hst": -600,
				"bst": 60, "cet": 60, "cest": 120, "eet": 120,
				"jst": 540, "kst": 540,
				"aest": 600, "aedt": 660, "nzst": 720,
				"beijing": 480, "shanghai": 480, "hong kong": 480, "singapore": 480,
				"tokyo": 540, "seoul": 540,
				"london": 0, "paris": 60, "berlin": 60, "moscow": 180, "dubai": 240,
				"new york": -300, "chicago": -360, "los angeles": -480, "sydney": 600,
			},
		},

		Set: datetime.SetConfig{
			PeriodicRegex: re(`\b(?:daily|nightly|weekly|biweekly|fortnightly|monthly|quarterly|yearly|annually|hourly)\b`),
			PeriodicMap: map[string]string{
				"daily":       "P1D",
				"nightly":     "P1D",
				"weekly":      "P1W",
				"biweekly":    "P2W",
				"fortnightly": "P2W",
				"monthly":     "P1M",
				"quarterly":   "P3M",
				"yearly":      "P1Y",
				"annually":    "P1Y",
				"hourly":      "PT1H",
			},
			EachUnitRegex:   re(`\b(?:every|each)\s+(?:(?P<other>other)\s+|(?P<num>\d+|` + numWords + `)\s+)?(?P<unit>years?|months?|weeks?|days?|hours?|minutes?|seconds?)\b`),
			EachPrefixRegex: re(`\b(?:every|each)\s+`),
			EachDayRegex:    re(`\b(?:every\s*day|each\s+day|every\s+single\s+day)\b\s*`),
			WeekdaysRegex:   re(`\b(?:on\s+)?(?P<weekday>` + weekdays + `)s\b`),
		},

		DateTime: datetime.DateTimeConfig{
			NowRegex: re(`\b(?:just\s+now|right\s+now|immediately|now|as\s+soon\s+as\s+possible|asap|recently|currently)\b`),
			NowMap: map[string]string{
				"just now":            timex.PastRef,
				"immediately":         timex.FutureRef,
				"now":                 timex.PresentRef,
				"right now":           timex.PresentRef,
				"currently":           timex.PresentRef,
				"asap":                timex.FutureRef,
				"as soon as possible": timex.FutureRef,
				"recently":            timex.PastRef,
			},
			ConnectorRegex:  re(`(?:on|at|,|,\s*at|@)`),
			YearSuffixRegex: re(`\s*,?\s*(?P<year>` + year4 + `)\b`),
		},

		DatePeriod: datetime.DatePeriodConfig{
			SimpleCasesRegex:    re(`\b(?:from\s+)?(?P<month>` + months + `)\.?\s+(?P<day1>` + dayNum + `)\s*(?:-|–|to|till|until|through|thru)\s*(?P<day2>` + dayNum + `)\b(?:\s*,?\s*(?P<year>` + year4 + `)\b)?`),
			MonthWithYearRegex:  re(`\b(?P<month>` + months + `)\.?\s*,?\s*(?:of\s+)?(?:(?P<year>` + year4 + `)|(?P<rel>this\s+year|next\s+year|last\s+year))\b`),
			MonthRegex:          regexp.MustCompile(`\b(?P<month>(?i:` + bareMonths + `)|May)\b`),
			YearRegex:           re(`\b(?:in|of|during|year)\s+(?P<year>` + year4 + `)\b`),
			BareYearRegex:       re(`\b(?P<year>` + year4 + `)\b`),
			YearSuffixRegex:     re(`\s*,?\s*(?P<year>` + year4 + `)\b`),
			RelativeYearRegex:   re(`\b(?P<rel>this\s+year|next\s+year|last\s+year|previous\s+year)\b`),
			YearRelMap:          yearRel,
			RelativePeriodRegex: re(`\b(?P<rel>this|next|last|previous|coming|current)\s+(?P<unit>week|month|year)\b`),
			WeekendRegex:        re(`\b(?:(?P<rel>this|next|last)\s+)?weekend\b`),
			WeekOfMonthRegex:    re(`\b(?:the\s+)?(?P<cardinal>` + cardinals + `)\s+week\s+(?:of|in)\s+(?:(?P<rel>this|next|last)\s+month|(?P<month>` + months + `)(?:\s*,?\s*(?P<year>` + year4 + `))?)\b`),
			QuarterRegex:        re(`\b(?:(?:the\s+)?(?P<cardinal>first|second|third|fourth|1st|2nd|3rd|4th)\s+quarter|q(?P<quarter>[1-4]))(?:\s+(?:of\s+)?(?:(?P<year>` + year4 + `)|(?P<rel>this|next|last)\s+year))?\b`),
			HalfYearRegex:       re(`\b(?:the\s+)?(?P<halfyear>first\s+half|second\s+half|h1|h2)(?:\s+of)?\s+(?:(?P<year>` + year4 + `)|(?P<rel>this|next|last)\s+year|the\s+year)\b`),
			HalfYearMap:         map[string]int{"first half": 1, "second half": 2, "h1": 1, "h2": 2},
			SeasonRegex:         re(`\b(?:(?P<rel>this|next|last)\s+)?(?P<season>spring|summer|fall|autumn|winter)(?:\s+(?:of\s+)?(?P<year>` + year4 + `))?\b`),
			SeasonMap:           map[string]string{"spring": "SP", "summer": "SU", "fall": "FA", "autumn": "FA", "winter": "WI"},
			RelativeNumberRegex: re(`\b(?P<rel>next|past|last|previous|coming|following)\s+(?P<num>\d+|` + numWords + `|few|couple\s+of)\s+(?P<unit>years|months|weeks|days)\b`),
			YearRangeRegex:      re(`\b(?:(?:from|between)\s+)?(?P<year1>` + year4 + `)\s*(?:-|–|to|and|till|until|through)\s*(?P<year2>` + year4 + `)\b`),
			EarlyRegex:          re(`\b(?:early|(?:the\s+)?(?:beginning|start)\s+of)[\s-]+(?:the\s+)?`),
			MidRegex:            re(`\b(?:mid|(?:the\s+)?middle\s+of)[\s-]*(?:the\s+)?`),
			LateRegex:           re(`\b(?:late|(?:the\s+)?end\s+of)[\s-]+(?:the\s+)?`),
		},

		TimePeriod: datetime.TimePeriodConfig{
			PureNumberRangeRegex: re(`\b(?P<hour1>2[0-3]|[01]?\d)(?::(?P<min1>[0-5]\d))?(?:\s*(?P<desc1>` + desc + `))?\s*(?:-|–|~|to|till|until)\s*(?P<hour2>2[0-4]|[01]?\d)(?::(?P<min2>[0-5]\d))?(?:\s*(?P<desc2>` + desc + `)|\b)`),
			TimeOfDayRegex:       re(`\b(?:in\s+the\s+)?(?P<timeofday>morning|afternoon|evening|night|business\s+hours)\b`),
			TimeOfDayMap:         timeOfDay,
			DuringTheDayRegex:    re(`\b(?:during\s+the\s+day|all\s+day|daytime)\b`),
		},

		DateTimePeriod: datetime.DateTimePeriodConfig{
			SpecificTimeOfDayRegex: re(`\b(?:tonight|last\s+night|this\s+(?:morning|afternoon|evening)|(?:tomorrow|yesterday)\s+(?:morning|afternoon|evening|night))\b`),
			SpecificTimeOfDayMap: map[string]datetime.SpecificTimeOfDay{
				"tonight":             {DayOffset: 0, TimeOfDay: timex.Night},
				"last night":          {DayOffset: -1, TimeOfDay: timex.Night},
				"this morning":        {DayOffset: 0, TimeOfDay: timex.Morning},
				"this afternoon":      {DayOffset: 0, TimeOfDay: timex.Afternoon},
				"this evening":        {DayOffset: 0, TimeOfDay: timex.Evening},
				"tomorrow morning":    {DayOffset: 1, TimeOfDay: timex.Morning},
				"tomorrow afternoon":  {DayOffset: 1, TimeOfDay: timex.Afternoon},
				"tomorrow evening":    {DayOffset: 1, TimeOfDay: timex.Evening},
				"tomorrow night":      {DayOffset: 1, TimeOfDay: timex.Night},
				"yesterday morning":   {DayOffset: -1, TimeOfDay: timex.Morning},
				"yesterday afternoon": {DayOffset: -1, TimeOfDay: timex.Afternoon},
				"yesterday evening":   {DayOffset: -1, TimeOfDay: timex.Evening},
				"yesterday night":     {DayOffset: -1, TimeOfDay: timex.Night},
			},
			ConnectorRegex:        re(`(?:on|at|,|in\s+the)`),
			RelativeTimeUnitRegex: re(`\b(?P<rel>next|past|last|previous|coming|following)\s+(?:(?P<num>\d+|` + numWords + `|few|couple\s+of)\s+)?(?P<unit>` + timeUnits + `)\b`),
		},

		Merged: datetime.MergedConfig{
			BeforeRegex:       re(`\b(?:before|prior\s+to|earlier\s+than|no\s+later\s+than)\s+`),
			AfterRegex:        re(`\b(?:after|later\s+than)\s+`),
			SinceRegex:        re(`\b(?:since|starting(?:\s+(?:from|on|at))?|beginning)\s+`),
			BeforeSuffixRegex: re(`\s*or\s+(?:earlier|before)\b`),
			AfterSuffixRegex:  re(`\s*or\s+(?:later|after)\b`),
			SinceSuffixRegex:  re(`\s*onwards?\b`),
			NumberEndingRegex: re(`\s+(?:meeting|appointment|call|conference|event|lunch)\s+to\s+(?P<newTime>\d{1,2})\b`),
			AmbiguityFilters: []datetime.AmbiguityFilter{
				{
					Span:    re(`the\s+(?:first|second|third|fourth|fifth)`),
					Context: re(`\bthe\s+(?:first|second|third|fourth|fifth)\s+(?:time|place|one|step|floor|row)\b`),
				},
				{
					Span:    re(`(?:on\s+)?(?:sunday|saturday)s?`),
					Context: re(`\b(?:sunday|saturday)\s+(?:school|times|mail|paper)\b`),
				},
			},
			SuperfluousWords: []string{"approximately", "roughly", "around", "about", "circa"},
		},

		Alt: datetime.AltConfig{
			OrRegex:                 re(`(?:,?\s*or|,)`),
			RelativeWeekPrefixRegex: re(`(?P<prefix>(?:this|next|last)\s+(?:week\s+(?:on\s+)?)?)`),
			RelativePeriodRegex:     re(`(?:this|next|last)\s+(?P<unit>week|month|year)`),
			OrRelativeRegex:         re(`\s*or\s+(?P<rel>next|last|previous|this)\b`),
		},
	}
}
