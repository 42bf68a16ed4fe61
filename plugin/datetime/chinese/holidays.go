package chinese

import (
	"math"
	"time"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/timex"
)

const holidayNames = `元旦节?|春节|除夕|元宵节?|清明节?|劳动节|五一|端午节?|七夕节?|中秋节?|重阳节?|国庆节?|腊八节?|` +
	`情人节|妇女节|植树节|愚人节|青年节|儿童节|建党节|建军节|教师节|万圣节|平安夜|圣诞节?|` +
	`母亲节|父亲节|感恩节`

func solar(month, d int) datetime.HolidayRule {
	return datetime.HolidayRule{Month: month, Day: d}
}

// lunar holidays are reported on their lunar month and day, flagged lunar.
func lunar(month, d int) datetime.HolidayRule {
	return datetime.HolidayRule{Month: month, Day: d, Lunar: true}
}

func nthWeekday(month int, wd time.Weekday, n int) datetime.HolidayRule {
	return datetime.HolidayRule{Compute: func(year int, loc *time.Location) time.Time {
		return timex.NthWeekdayOfMonth(year, month, wd, n, loc)
	}}
}

// qingming is the Pure Brightness solar term, April 4 or 5 in the years
// this recognizer deals with.
func qingming(year int, loc *time.Location) time.Time {
	y := float64(year % 100)
	c := 4.81
	if year < 2000 {
		c = 5.59
	}
	d := int(math.Floor(y*0.2422+c)) - int(y)/4
	return time.Date(year, time.April, d, 0, 0, 0, 0, loc)
}

func holidays() map[string]datetime.HolidayRule {
	h := map[string]datetime.HolidayRule{}
	add := func(rule datetime.HolidayRule, names ...string) {
		for _, n := range names {
			h[n] = rule
		}
	}
	add(solar(1, 1), "元旦", "元旦节")
	add(solar(2, 14), "情人节")
	add(solar(3, 8), "妇女节")
	add(solar(3, 12), "植树节")
	add(solar(4, 1), "愚人节")
	add(solar(5, 1), "劳动节", "五一")
	add(solar(5, 4), "青年节")
	add(solar(6, 1), "儿童节")
	add(solar(7, 1), "建党节")
	add(solar(8, 1), "建军节")
	add(solar(9, 10), "教师节")
	add(solar(10, 1), "国庆", "国庆节")
	add(solar(10, 31), "万圣节")
	add(solar(12, 24), "平安夜")
	add(solar(12, 25), "圣诞", "圣诞节")
	add(lunar(1, 1), "春节")
	add(lunar(1, 15), "元宵", "元宵节")
	add(lunar(5, 5), "端午", "端午节")
	add(lunar(7, 7), "七夕", "七夕节")
	add(lunar(8, 15), "中秋", "中秋节")
	add(lunar(9, 9), "重阳", "重阳节")
	add(lunar(12, 8), "腊八", "腊八节")
	add(lunar(12, 30), "除夕")
	add(datetime.HolidayRule{Compute: qingming}, "清明", "清明节")
	add(nthWeekday(5, time.Sunday, 2), "母亲节")
	add(nthWeekday(6, time.Sunday, 3), "父亲节")
	add(nthWeekday(11, time.Thursday, 4), "感恩节")
	return h
}
