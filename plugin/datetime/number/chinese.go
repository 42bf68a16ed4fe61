package number

import "strings"

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
	'两': 2, '壹': 1, '贰': 2, '叁': 3, '肆': 4,
	'伍': 5, '陆': 6, '柒': 7, '捌': 8, '玖': 9,
}

var chineseUnits = map[rune]int{
	'十': 10, '拾': 10,
	'百': 100, '佰': 100,
	'千': 1000, '仟': 1000,
}

// Chinese reads Chinese numerals: "二十一", "两", "十五", "二〇一六",
// "一万二千" and Arabic digits, full-width ones included.
type Chinese struct{}

// ParseInt implements datetime.IntegerParser.
func (Chinese) ParseInt(s string) (int, bool) {
	s = Fold(s)
	if s == "" {
		return 0, false
	}
	if n, ok := atoi(s); ok {
		return n, true
	}
	if n, ok := digitSequence(s); ok {
		return n, true
	}
	return unitArithmetic(s)
}

// ParseOrdinal implements datetime.OrdinalParser. The ordinal marker 第 is
// optional; lunar day forms such as "初五" and "廿三" are read as well.
func (c Chinese) ParseOrdinal(s string) (int, bool) {
	s = Fold(s)
	s = strings.TrimPrefix(s, "第")
	s = strings.TrimPrefix(s, "初")
	s = strings.Replace(s, "廿", "二十", 1)
	return c.ParseInt(s)
}

// digitSequence reads numerals written digit by digit, as years are:
// "二〇一六" is 2016.
func digitSequence(s string) (int, bool) {
	runes := []rune(s)
	if len(runes) < 2 {
		return 0, false
	}
	n := 0
	for _, r := range runes {
		d, ok := chineseDigits[r]
		if !ok || r == '两' {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// unitArithmetic reads positional numerals with 十, 百, 千 and 万. A leading
// 十 counts as 一十, and zeros only mark a skipped position.
func unitArithmetic(s string) (int, bool) {
	var total, section, num int
	hasNum, seen := false, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			hasNum = true
		case chineseDigits[r] > 0 || r == '两':
			num = chineseDigits[r]
			hasNum = true
		case r == '零' || r == '〇':
			num, hasNum = 0, false
		case chineseUnits[r] > 0:
			if !hasNum {
				if chineseUnits[r] != 10 {
					return 0, false
				}
				num = 1
			}
			section += num * chineseUnits[r]
			num, hasNum = 0, false
		case r == '万' || r == '萬':
			section += num
			if section == 0 {
				return 0, false
			}
			total += section * 10000
			section, num, hasNum = 0, 0, false
		default:
			return 0, false
		}
		seen = true
	}
	if !seen {
		return 0, false
	}
	return total + section + num, true
}
