// Package chinese is the zh-cn locale of the datetime recognizer.
package chinese

import (
	"regexp"
	"sync"
	"time"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/number"
	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// Culture is the culture code served by this package.
const Culture = "zh-cn"

// Config returns the shared Chinese locale. It is built on first use.
var Config = sync.OnceValue(build)

var re = regexp.MustCompile

// zoneOffsets covers city time names and the 东八区 style numbered zones.
func zoneOffsets() map[string]int {
	z := map[string]int{
		"北京": 480, "上海": 480, "香港": 480, "澳门": 480, "台北": 480, "新加坡": 480,
		"东京": 540, "首尔": 540,
		"伦敦": 0, "巴黎": 60, "柏林": 60, "莫斯科": 180, "迪拜": 240,
		"纽约": -300, "芝加哥": -360, "洛杉矶": -480, "悉尼": 600,
		"零时区": 0, "中时区": 0,
	}
	names := []string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "十一", "十二"}
	for i, n := range names {
		z["东"+n+"区"] = (i + 1) * 60
		z["西"+n+"区"] = -(i + 1) * 60
	}
	return z
}

func build() *datetime.LocaleConfig {
	relMap := map[string]int{
		"这":   0,
		"本":   0,
		"今":   0,
		"下":   1,
		"上":   -1,
		"下下":  2,
		"上上":  -2,
		"未来":  1,
		"接下来": 1,
		"今后":  1,
		"过去":  -1,
		"最近":  -1,
	}
	yearRel := map[string]int{
		"今年": 0,
		"明年": 1,
		"去年": -1,
		"前年": -2,
		"后年": 2,
	}
	dayOffsets := map[string]int{
		"今天":  0,
		"今日":  0,
		"明天":  1,
		"明日":  1,
		"后天":  2,
		"大后天": 3,
		"昨天":  -1,
		"昨日":  -1,
		"前天":  -2,
		"大前天": -3,
	}

	return &datetime.LocaleConfig{
		Culture:           Culture,
		TwoDigitYearPivot: 90,
		Integers:          number.Chinese{},
		Ordinals:          number.Chinese{},

		MonthOfYear: map[string]int{"正": 1, "冬": 11, "腊": 12},
		DayOfWeek: map[string]time.Weekday{
			"一": time.Monday, "1": time.Monday,
			"二": time.Tuesday, "2": time.Tuesday,
			"三": time.Wednesday, "3": time.Wednesday,
			"四": time.Thursday, "4": time.Thursday,
			"五": time.Friday, "5": time.Friday,
			"六": time.Saturday, "6": time.Saturday,
			"日": time.Sunday, "天": time.Sunday, "7": time.Sunday,
		},
		UnitMap: map[string]string{
			"年":  timex.UnitYear,
			"月":  timex.UnitMonth,
			"周":  timex.UnitWeek,
			"星期": timex.UnitWeek,
			"礼拜": timex.UnitWeek,
			"天":  timex.UnitDay,
			"小时": timex.UnitHour,
			"钟头": timex.UnitHour,
			"分钟": timex.UnitMinute,
			"秒":  timex.UnitSecond,
			"秒钟": timex.UnitSecond,
		},
		DayOffsets:  dayOffsets,
		RelativeMap: relMap,
		CardinalMap: map[string]int{"最后": 5, "最后一": 5},

		Range: datetime.RangeConfig{
			FromRegex:    re(`(?:从|自)\s*`),
			BetweenRegex: re(`介于\s*`),
			TillRegex:    re(`(?:到|至|~|～|-|—|－)`),
			AndRegex:     re(`(?:和|与|及)`),
		},

		Date: datetime.DateConfig{
			DateRegexes: []*regexp.Regexp{
				re(`(?:(?P<year>` + year + `|\d{2})\s*年\s*)?(?P<month>` + month + `)\s*月\s*(?P<day>` + day + `)\s*[日号號](?:\s*[,，]?\s*` + week + `(?P<weekday>` + weekday + `))?`),
				re(`\b(?P<year>\d{4})[-/.](?P<month>1[0-2]|0?[1-9])[-/.](?P<day>3[01]|[12]\d|0?[1-9])\b`),
				re(`(?:农历|阴历)\s*(?P<month>正|冬|腊|十[一二]?|[一二三四五六七八九])\s*月\s*(?P<day>初[一二三四五六七八九十]|廿[一二三四五六七八九]|二十[一二三四五六七八九]?|十[一二三四五六七八九]?|三十)`),
			},
			SpecialDayRegex:      re(`(?P<day>大后天|大前天|今天|今日|明天|明日|后天|昨天|昨日|前天)`),
			RelativeWeekdayRegex: re(`(?P<rel>下下|上上|这|本|下|上)\s*个?\s*` + week + `(?P<weekday>` + weekday + `)`),
			WeekdayRegex:         re(week + `(?P<weekday>` + weekday + `)`),
			OnRegex:              re(`(?P<day>` + day + `)\s*[日号號]`),
			WeekdayDayRegex:      re(`(?P<day>` + day + `)\s*[日号號]\s*[,，]?\s*` + week + `(?P<weekday>` + weekday + `)`),
			WeekdayOfMonthRegex:  re(`(?:(?P<year>\d{4})\s*年\s*)?(?:(?P<month>` + month + `)\s*月|(?P<rel>这|本|下|上)\s*个?\s*月)\s*的?\s*(?:第\s*)?(?P<cardinal>[一二三四五1-5]|最后一?)\s*个\s*` + week + `(?P<weekday>` + weekday + `)`),
			AgoRegex:             re(`\s*(?:以前|之前|前)`),
			LaterRegex:           re(`\s*(?:以后|之后|后)`),
			LunarRegex:           re(`农历|阴历`),
		},

		Time: datetime.TimeConfig{
			TimeRegexes: []*regexp.Regexp{
				re(`(?:(?P<desc>` + desc + `)\s*)?(?P<hour>` + hour + `)\s*[点點时時]\s*(?:(?P<half>半)|(?P<quarter>[一三]刻)|(?P<min>` + minute + `)\s*分?(?:\s*(?P<sec>` + minute + `)\s*秒)?)?`),
				re(`(?:(?P<desc>` + desc + `)\s*)?(?P<hour>2[0-4]|[01]?\d)[:：](?P<min>[0-5]\d)(?:[:：](?P<sec>[0-5]\d))?`),
				re(`(?P<special>正午|午夜|子夜)`),
				re(`(?P<mealtime>(?P<special>午饭时间|午餐时间|晚饭时间|晚餐时间|早饭时间|早餐时间))`),
			},
			AMRegex:     re(`凌晨|清晨|早上|早晨|上午|半夜`),
			PMRegex:     re(`下午|午后|傍晚|晚上|夜里`),
			MidDayRegex: re(`中午`),
			SpecialTimes: map[string]int{
				"正午":   12,
				"午夜":   0,
				"子夜":   0,
				"午饭时间": 12,
				"午餐时间": 12,
				"晚饭时间": 19,
				"晚餐时间": 19,
				"早饭时间": 8,
				"早餐时间": 8,
			},
			QuarterMap: map[string]int{"一刻": 15, "三刻": 45},
		},

		Duration: datetime.DurationConfig{
			DurationRegexes: []*regexp.Regexp{
				re(`(?P<num>` + num + `)\s*个?\s*(?P<unit>` + durUnit + `)`),
				re(`(?P<num>` + num + `)\s*个\s*(?P<half>半)\s*(?P<unit>小时|钟头|月|星期|礼拜)`),
				re(`(?P<num>` + num + `)\s*(?P<unit>年|天|周)(?P<half>半)`),
				re(`(?P<halfonly>半)\s*个?\s*(?P<unit>小时|钟头|天|年|月|分钟)`),
			},
			CompoundConnectorRegex: re(`(?:又|零|,|，)`),
			MoreThanRegex:          re(`(?:超过|多于|至少|不少于|大于)\s*`),
			LessThanRegex:          re(`(?:不到|少于|不超过|至多|最多|小于|不足)\s*`),
			SpecialNumbers:         map[string]float64{"几": 3, "两": 2},
			CalendarRegex:          re(`(?:` + year + `)\s*年|(?:` + month + `)\s*月`),
		},

		Holiday: datetime.HolidayConfig{
			HolidayRegexes: []*regexp.Regexp{
				re(`(?:(?P<year>` + year + `)\s*年\s*的?\s*|(?P<rel>` + relYear + `)\s*的?\s*)?(?P<holiday>` + holidayNames + `)`),
			},
			Holidays:   holidays(),
			YearRelMap: yearRel,
		},

		TimeZone: datetime.TimeZoneConfig{
			OffsetRegex: re(`(?i)\b(?:utc|gmt)(?:\s*(?P<sign>[+-])\s*(?P<offset>\d{1,2}(?::?\d{2})?))?`),
			ZoneRegexes: []*regexp.Regexp{
				re(`(?P<city>北京|上海|香港|澳门|台北|新加坡|东京|首尔|伦敦|巴黎|柏林|莫斯科|迪拜|纽约|芝加哥|洛杉矶|悉尼)时间`),
				re(`(?P<zone>[东西](?:十[一二]?|[一二三四五六七八九])区|零时区|中时区)`),
			},
			ZoneOffsets: zoneOffsets(),
		},

		Set: datetime.SetConfig{
			PeriodicRegex: re(`每个小时|每小时|每个星期|每星期|每周|每个月|每月|每季度|每年|每天|每日|每晚|天天`),
			PeriodicMap: map[string]string{
				"每天":   "P1D",
				"每日":   "P1D",
				"每晚":   "P1D",
				"天天":   "P1D",
				"每周":   "P1W",
				"每星期":  "P1W",
				"每个星期": "P1W",
				"每月":   "P1M",
				"每个月":  "P1M",
				"每季度":  "P3M",
				"每年":   "P1Y",
				"每小时":  "PT1H",
				"每个小时": "PT1H",
			},
			EachUnitRegex:   re(`每\s*(?P<num>\d+|` + cnNum + `)\s*个?\s*(?P<unit>` + durUnit + `)`),
			EachPrefixRegex: re(`每\s*(?:个\s*)?`),
			EachDayRegex:    re(`(?:每天|每日|天天)\s*`),
		},

		DateTime: datetime.DateTimeConfig{
			NowRegex: re(`现在|此时|此刻|目前|马上|立刻|最近|刚刚`),
			NowMap: map[string]string{
				"现在": timex.PresentRef,
				"此时": timex.PresentRef,
				"此刻": timex.PresentRef,
				"目前": timex.PresentRef,
				"马上": timex.FutureRef,
				"立刻": timex.FutureRef,
				"最近": timex.PastRef,
				"刚刚": timex.PastRef,
			},
			ConnectorRegex: re(`(?:的|,|，)`),
		},

		DatePeriod: datetime.DatePeriodConfig{
			SimpleCasesRegex:    re(`(?:(?P<year>\d{4})\s*年\s*)?(?P<month>` + month + `)\s*月\s*(?P<day1>` + day + `)\s*[日号]?\s*(?:到|至|~|～|-|—|－)\s*(?P<day2>` + day + `)\s*[日号]`),
			MonthWithYearRegex:  re(`(?:(?P<year>` + year + `|\d{2})\s*年|(?P<rel>` + relYear + `))\s*的?\s*(?P<month>` + month + `)\s*月份?`),
			MonthRegex:          re(`(?P<month>` + month + `)\s*月份?`),
			YearRegex:           re(`(?P<year>` + year + `)\s*年(?:份|度)?`),
			RelativeYearRegex:   re(`(?P<rel>` + relYear + `)`),
			YearRelMap:          yearRel,
			RelativePeriodRegex: re(`(?P<rel>上上|下下|这|本|上|下)\s*个?\s*(?P<unit>周|星期|礼拜|月)`),
			WeekendRegex:        re(`(?:(?P<rel>这|本|上|下)\s*个?\s*)?周末`),
			WeekOfMonthRegex:    re(`(?:(?P<year>\d{4})\s*年\s*)?(?:(?P<month>` + month + `)\s*月|(?P<rel>这|本|上|下)\s*个?\s*月)\s*的?\s*第\s*(?P<cardinal>[一二三四五1-5])\s*个?\s*` + week),
			QuarterRegex:        re(`(?:(?P<year>\d{4})\s*年\s*的?\s*|(?P<rel>` + relYear + `)\s*的?\s*)?(?:第?\s*(?P<cardinal>[一二三四1-4])\s*季度|[Qq](?P<quarter>[1-4]))`),
			HalfYearRegex:       re(`(?:(?P<year>\d{4})\s*年\s*的?\s*|(?P<rel>` + relYear + `)\s*的?\s*)?(?P<halfyear>上半年|下半年)`),
			HalfYearMap:         map[string]int{"上半年": 1, "下半年": 2},
			SeasonRegex:         re(`(?:(?P<year>\d{4})\s*年\s*的?\s*|(?P<rel>` + relYear + `)\s*的?\s*)?(?P<season>春天|春季|夏天|夏季|秋天|秋季|冬天|冬季)`),
			SeasonMap: map[string]string{
				"春天": "SP", "春季": "SP",
				"夏天": "SU", "夏季": "SU",
				"秋天": "FA", "秋季": "FA",
				"冬天": "WI", "冬季": "WI",
			},
			RelativeNumberRegex: re(`(?P<rel>未来|接下来|今后|过去|最近)\s*(?P<num>\d+|` + cnNum + `|几)\s*个?\s*(?P<unit>年|月|周|星期|礼拜|天)`),
			YearRangeRegex:      re(`(?:从\s*)?(?P<year1>\d{4})\s*年?\s*(?:到|至|~|～|-|—|－)\s*(?P<year2>\d{4})\s*年?`),
			DekadRegex:          re(`\s*的?\s*(?P<dekad>上旬|中旬|下旬)`),
			DekadMap:            map[string]datetime.ModTag{"上旬": datetime.ModStart, "中旬": datetime.ModMid, "下旬": datetime.ModEnd},
		},

		TimePeriod: datetime.TimePeriodConfig{
			PureNumberRangeRegex: re(`(?:(?P<desc1>` + desc + `)\s*)?(?P<hour1>` + hour + `)\s*[点時时:：]\s*(?:(?P<min1>` + minute + `)\s*分?)?\s*(?:到|至|~|～|-|—|－)\s*(?:(?P<desc2>` + desc + `)\s*)?(?P<hour2>` + hour + `)\s*[点時时:：]\s*(?:(?P<min2>` + minute + `)\s*分?)?`),
			TimeOfDayRegex:       re(`(?P<timeofday>早上|早晨|清晨|上午|下午|傍晚|晚上|夜里|夜间)`),
			TimeOfDayMap: map[string]datetime.TimeOfDay{
				"早上": {Timex: timex.Morning, StartHour: 8, EndHour: 12},
				"早晨": {Timex: timex.Morning, StartHour: 8, EndHour: 12},
				"清晨": {Timex: timex.Morning, StartHour: 8, EndHour: 12},
				"上午": {Timex: timex.Morning, StartHour: 8, EndHour: 12},
				"下午": {Timex: timex.Afternoon, StartHour: 12, EndHour: 16},
				"傍晚": {Timex: timex.Evening, StartHour: 16, EndHour: 20},
				"晚上": {Timex: timex.Evening, StartHour: 16, EndHour: 20},
				"夜里": {Timex: timex.Night, StartHour: 20, EndHour: 23},
				"夜间": {Timex: timex.Night, StartHour: 20, EndHour: 23},
			},
			DuringTheDayRegex: re(`白天|全天|一整天`),
		},

		DateTimePeriod: datetime.DateTimePeriodConfig{
			SpecificTimeOfDayRegex: re(`今晚|今夜|今早|明早|明晚|昨晚|昨夜`),
			SpecificTimeOfDayMap: map[string]datetime.SpecificTimeOfDay{
				"今晚": {DayOffset: 0, TimeOfDay: timex.Evening},
				"今夜": {DayOffset: 0, TimeOfDay: timex.Night},
				"今早": {DayOffset: 0, TimeOfDay: timex.Morning},
				"明早": {DayOffset: 1, TimeOfDay: timex.Morning},
				"明晚": {DayOffset: 1, TimeOfDay: timex.Evening},
				"昨晚": {DayOffset: -1, TimeOfDay: timex.Evening},
				"昨夜": {DayOffset: -1, TimeOfDay: timex.Night},
			},
			ConnectorRegex:        re(`(?:的|,|，)`),
			RelativeTimeUnitRegex: re(`(?P<rel>未来|接下来|今后|过去|最近)\s*(?:(?P<num>\d+|` + cnNum + `|几)\s*个?\s*)?(?P<unit>小时|钟头|分钟|秒钟|秒)`),
		},

		Merged: datetime.MergedConfig{
			BeforeRegex:       re(`(?:早于|不晚于)\s*`),
			AfterRegex:        re(`(?:晚于|不早于)\s*`),
			SinceRegex:        re(`(?:自从|自打)\s*`),
			BeforeSuffixRegex: re(`\s*(?:之前|以前|前)`),
			AfterSuffixRegex:  re(`\s*(?:之后|以后|后)`),
			SinceSuffixRegex:  re(`\s*(?:起|开始|以来)`),
			SuperfluousWords:  []string{"大约", "大概", "左右"},
		},

		Alt: datetime.AltConfig{
			OrRegex:                 re(`\s*(?:或者|或是|或|还是|、|，|,)\s*`),
			RelativeWeekPrefixRegex: re(`(?P<prefix>这|本|下|上)\s*个?\s*` + week),
			RelativePeriodRegex:     re(`(?:这|本|下|上)\s*个?\s*(?P<unit>周|月)`),
			OrRelativeRegex:         re(`\s*(?:或者|或|还是)\s*(?P<rel>下|上)`),
		},
	}
}
