package number

import "strings"

var englishOnes = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var englishTens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var englishOrdinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14, "fifteenth": 15,
	"sixteenth": 16, "seventeenth": 17, "eighteenth": 18, "nineteenth": 19,
	"twentieth": 20, "thirtieth": 30, "fortieth": 40, "fiftieth": 50,
	"hundredth": 100,
}

// English reads English number words ("twenty-one", "a hundred and five")
// and digits.
type English struct{}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
}

// ParseInt implements datetime.IntegerParser.
func (English) ParseInt(s string) (int, bool) {
	s = Fold(s)
	if n, ok := atoi(strings.ReplaceAll(s, ",", "")); ok {
		return n, true
	}
	return wordsToInt(words(s))
}

func wordsToInt(ws []string) (int, bool) {
	if len(ws) == 0 {
		return 0, false
	}
	var total, cur int
	seen := false
	for i, w := range ws {
		switch {
		case w == "and" && i > 0:
			continue
		case w == "a" && i == 0 && len(ws) > 1:
			cur = 1
		case englishOnes[w] > 0 || w == "zero":
			cur += englishOnes[w]
		case englishTens[w] > 0:
			cur += englishTens[w]
		case w == "hundred":
			if cur == 0 {
				cur = 1
			}
			cur *= 100
		case w == "thousand":
			if cur == 0 {
				cur = 1
			}
			total += cur * 1000
			cur = 0
		default:
			return 0, false
		}
		seen = true
	}
	return total + cur, seen
}

// ParseOrdinal implements datetime.OrdinalParser: "3rd", "21st",
// "twenty-first", "the thirtieth".
func (e English) ParseOrdinal(s string) (int, bool) {
	s = strings.TrimPrefix(strings.ToLower(Fold(s)), "the ")
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if digits, ok := strings.CutSuffix(s, suffix); ok {
			if n, ok := atoi(digits); ok && n > 0 {
				return n, true
			}
		}
	}
	ws := words(s)
	if len(ws) == 0 {
		return 0, false
	}
	last, ok := englishOrdinals[ws[len(ws)-1]]
	if !ok {
		return 0, false
	}
	if len(ws) == 1 {
		return last, true
	}
	lead, ok := wordsToInt(ws[:len(ws)-1])
	if !ok {
		return 0, false
	}
	if last == 100 {
		return lead * 100, true
	}
	return lead + last, true
}
