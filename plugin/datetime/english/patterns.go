package english

// Shared fragments of the English grammar. They are spliced into the
// regexes of config.go and never compiled on their own.
const (
	months      = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`
	bareMonths  = `january|february|march|april|june|july|august|september|october|november|december`
	weekdays    = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	weekdaysAbb = weekdays + `|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun`
	dayNum      = `(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)?`
	ordWords    = `twenty[\s-](?:first|second|third|fourth|fifth|sixth|seventh|eighth|ninth)|thirty[\s-]first|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|eleventh|twelfth|thirteenth|fourteenth|fifteenth|sixteenth|seventeenth|eighteenth|nineteenth|twentieth|thirtieth`
	numWords    = `(?:twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)(?:[\s-](?:one|two|three|four|five|six|seven|eight|nine))?|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|ten|one|two|three|four|five|six|seven|eight|nine`
	hourWords   = `twelve|eleven|ten|nine|eight|seven|six|five|four|three|two|one`
	cardinals   = `first|second|third|fourth|fifth|last|1st|2nd|3rd|4th|5th`
	year4       = `(?:1[5-9]|2\d)\d{2}`
	relWord     = `this|next|last|previous`

	// desc is an am/pm descriptor. Dotted forms cannot end on a word
	// boundary, so only the undotted ones carry \b.
	desc = `(?:[ap]\.m\.|[ap]\.m\b|[ap]m\b|in\s+the\s+(?:morning|afternoon|evening)\b|at\s+night\b)`

	durationUnits = `years?|yrs?|months?|weeks?|wks?|days?|hours?|hrs?|minutes?|mins?|seconds?|secs?`
	timeUnits     = `hours?|hrs?|minutes?|mins?|seconds?|secs?`
)
