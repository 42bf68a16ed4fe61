package english

import (
	"time"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/timex"
)

const holidayNames = `christmas\s+eve|christmas(?:\s+day)?|xmas|new\s+year['’]?s?\s+eve|new\s+year['’]?s?(?:\s+day)?|` +
	`independence\s+day|valentine['’]?s?\s+day|halloween|thanksgiving(?:\s+day)?|easter(?:\s+sunday)?|` +
	`mother['’]?s?\s+day|father['’]?s?\s+day|memorial\s+day|labou?r\s+day|` +
	`martin\s+luther\s+king(?:\s+jr\.?)?\s+day|mlk\s+day|veteran['’]?s?\s+day|columbus\s+day|` +
	`groundhog\s+day|st\.?\s+patrick['’]?s?\s+day|boxing\s+day`

func nth(month int, wd time.Weekday, n int) func(int, *time.Location) time.Time {
	return func(year int, loc *time.Location) time.Time {
		return timex.NthWeekdayOfMonth(year, month, wd, n, loc)
	}
}

func last(month int, wd time.Weekday) func(int, *time.Location) time.Time {
	return func(year int, loc *time.Location) time.Time {
		return timex.LastWeekdayOfMonth(year, month, wd, loc)
	}
}

func fixedDay(month, day int) datetime.HolidayRule {
	return datetime.HolidayRule{Month: month, Day: day}
}

func computed(f func(int, *time.Location) time.Time) datetime.HolidayRule {
	return datetime.HolidayRule{Compute: f}
}

// holidays is keyed by datetime.NormalizeHoliday of every spelling the
// holiday regex accepts.
func holidays() map[string]datetime.HolidayRule {
	h := map[string]datetime.HolidayRule{}
	add := func(rule datetime.HolidayRule, names ...string) {
		for _, n := range names {
			h[n] = rule
		}
	}
	add(fixedDay(12, 25), "christmas", "christmasday", "xmas")
	add(fixedDay(12, 24), "christmaseve")
	add(fixedDay(1, 1), "newyear", "newyears", "newyearday", "newyearsday")
	add(fixedDay(12, 31), "newyeareve", "newyearseve")
	add(fixedDay(7, 4), "independenceday")
	add(fixedDay(2, 14), "valentineday", "valentinesday")
	add(fixedDay(10, 31), "halloween")
	add(fixedDay(11, 11), "veteranday", "veteransday")
	add(fixedDay(2, 2), "groundhogday")
	add(fixedDay(3, 17), "stpatrickday", "stpatricksday")
	add(fixedDay(12, 26), "boxingday")
	add(computed(timex.Easter), "easter", "eastersunday")
	add(computed(nth(11, time.Thursday, 4)), "thanksgiving", "thanksgivingday")
	add(computed(nth(5, time.Sunday, 2)), "motherday", "mothersday")
	add(computed(nth(6, time.Sunday, 3)), "fatherday", "fathersday")
	add(computed(last(5, time.Monday)), "memorialday")
	add(computed(nth(9, time.Monday, 1)), "laborday", "labourday")
	add(computed(nth(1, time.Monday, 3)), "martinlutherkingday", "martinlutherkingjrday", "mlkday")
	add(computed(nth(10, time.Monday, 2)), "columbusday")
	return h
}
