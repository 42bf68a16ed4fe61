package chinese

// Fragments spliced into the regexes of config.go. Go's \b only knows ASCII
// word characters, so none of them lean on word boundaries next to Han
// characters.
const (
	cnNum = `[零〇一二两三四五六七八九十百千]+`

	year   = `\d{4}|[零〇一二三四五六七八九]{4}`
	month  = `1[0-2]|0?[1-9]|十[一二]?|[一二三四五六七八九]`
	day    = `3[01]|[12]\d|0?[1-9]|三十一?|二十[一二三四五六七八九]?|十[一二三四五六七八九]?|[一二三四五六七八九]`
	hour   = `2[0-4]|[01]?\d|二十[一二三四]?|十[一二三四五六七八九]?|[零一二两三四五六七八九]`
	minute = `[0-5]?\d|[二三四五]?十[一二三四五六七八九]?|零?[一二三四五六七八九]`

	weekday = `[一二三四五六日天1-7]`
	week    = `(?:星期|周|礼拜)`

	// Am/pm descriptors precede the hour. A bare 晚 is left out because it
	// also starts 晚于.
	desc = `凌晨|清晨|早上|早晨|上午|中午|午后|下午|傍晚|晚上|夜里|半夜`

	relYear = `今年|明年|去年|前年|后年`
	durUnit = `年|月|周|星期|礼拜|天|小时|钟头|分钟|秒钟|秒`
	num     = `\d+(?:\.\d+)?|` + cnNum + `|几`
)
