package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/rrule"
)

// Output formats of the --format flag.
const (
	formatTable = "table"
	formatJSON  = "json"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

func renderExtract(w io.Writer, results []datetime.ExtractResult, format string) error {
	switch format {
	case formatJSON:
		b, err := datetime.EncodeResults(results)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case formatTable, "":
		tw := newTable(w, []string{"START", "LENGTH", "TEXT", "TYPE"})
		for _, er := range results {
			tw.Append([]string{strconv.Itoa(er.Start), strconv.Itoa(er.Length), er.Text, string(er.Kind)})
		}
		tw.Render()
		return nil
	}
	return errors.Errorf("unknown format %q", format)
}

type recognizedJSON struct {
	Start      int                 `json:"start"`
	Length     int                 `json:"length"`
	Text       string              `json:"text"`
	TypeName   string              `json:"type_name"`
	Timex      string              `json:"timex,omitempty"`
	Resolution []map[string]string `json:"resolution"`
	RRule      string              `json:"rrule,omitempty"`
	Next       []time.Time         `json:"next,omitempty"`
}

// recurrence expands a set into its rule and next occurrences.
func recurrence(pr datetime.ParseResult, ref time.Time, occurrences int) (string, []time.Time) {
	if pr.Kind != datetime.KindSet || pr.TimexStr == "" {
		return "", nil
	}
	rule, next, err := rrule.Expand(pr.TimexStr, ref, occurrences)
	if err != nil {
		return "", nil
	}
	return rule.String(), next
}

func renderRecognize(w io.Writer, results []datetime.ParseResult, ref time.Time, occurrences int, format string) error {
	switch format {
	case formatJSON:
		out := make([]recognizedJSON, 0, len(results))
		for _, pr := range results {
			rule, next := recurrence(pr, ref, occurrences)
			out = append(out, recognizedJSON{
				Start:      pr.Start,
				Length:     pr.Length,
				Text:       pr.Text,
				TypeName:   pr.TypeName(),
				Timex:      pr.TimexStr,
				Resolution: pr.Resolution(),
				RRule:      rule,
				Next:       next,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatTable, "":
		tw := newTable(w, []string{"TEXT", "TYPE", "TIMEX", "FUTURE", "PAST", "MOD", "RRULE"})
		for _, pr := range results {
			rule, _ := recurrence(pr, ref, 0)
			future, past, mod := "", "", ""
			if res := pr.Resolution(); len(res) > 0 {
				future = describe(res[len(res)-1])
				past = describe(res[0])
				mod = string(pr.Value.Mod)
			}
			tw.Append([]string{pr.Text, pr.TypeName(), pr.TimexStr, future, past, mod, rule})
		}
		tw.Render()
		return nil
	}
	return errors.Errorf("unknown format %q", format)
}

// describe flattens one resolution candidate into a table cell.
func describe(m map[string]string) string {
	if v, ok := m["value"]; ok {
		return v
	}
	var parts []string
	if s, ok := m["start"]; ok {
		parts = append(parts, s)
	}
	if e, ok := m["end"]; ok {
		parts = append(parts, e)
	}
	return strings.Join(parts, " ~ ")
}
