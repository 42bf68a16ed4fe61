package datetime

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Tags of the ExtraData variants on the wire.
const (
	dataInequality       = "inequality"
	dataCompoundDuration = "compound_duration"
	dataAlt              = "alt"
	dataTimeZone         = "timezone"
)

type extractResultJSON struct {
	Start    int            `json:"start"`
	Length   int            `json:"length"`
	Text     string         `json:"text"`
	Type     EntityKind     `json:"type"`
	Data     *extraDataJSON `json:"data,omitempty"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type extraDataJSON struct {
	Kind string `json:"kind"`

	Mod ModTag `json:"mod,omitempty"`

	CompoundKind CompoundKind    `json:"compoundKind,omitempty"`
	Parts        []ExtractResult `json:"parts,omitempty"`

	OriginalKind EntityKind `json:"originalKind,omitempty"`
	Inherit      AltInherit `json:"inherit,omitempty"`
	ContextText  string     `json:"contextText,omitempty"`
	ContextKind  EntityKind `json:"contextKind,omitempty"`

	Zone *ExtractResult `json:"zone,omitempty"`
}

// MarshalJSON encodes the result with its payload tagged by variant.
func (er ExtractResult) MarshalJSON() ([]byte, error) {
	out := extractResultJSON{
		Start:    er.Start,
		Length:   er.Length,
		Text:     er.Text,
		Type:     er.Kind,
		Metadata: er.Metadata,
	}
	switch d := er.Data.(type) {
	case nil:
	case InequalityData:
		out.Data = &extraDataJSON{Kind: dataInequality, Mod: d.Mod}
	case CompoundDurationData:
		out.Data = &extraDataJSON{Kind: dataCompoundDuration, CompoundKind: d.Kind, Parts: d.Parts}
	case AltContext:
		out.Data = &extraDataJSON{
			Kind:         dataAlt,
			OriginalKind: d.OriginalKind,
			Inherit:      d.Inherit,
			ContextText:  d.ContextText,
			ContextKind:  d.ContextKind,
		}
	case TimeZoneData:
		zone := d.Zone
		out.Data = &extraDataJSON{Kind: dataTimeZone, Zone: &zone}
	default:
		return nil, errors.Errorf("unknown extra data %T", d)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes what MarshalJSON produced.
func (er *ExtractResult) UnmarshalJSON(b []byte) error {
	var in extractResultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return errors.Wrap(err, "failed to decode extract result")
	}
	*er = ExtractResult{
		Start:    in.Start,
		Length:   in.Length,
		Text:     in.Text,
		Kind:     in.Type,
		Metadata: in.Metadata,
	}
	if in.Data == nil {
		return nil
	}
	switch in.Data.Kind {
	case dataInequality:
		er.Data = InequalityData{Mod: in.Data.Mod}
	case dataCompoundDuration:
		er.Data = CompoundDurationData{Kind: in.Data.CompoundKind, Parts: in.Data.Parts}
	case dataAlt:
		er.Data = AltContext{
			OriginalKind: in.Data.OriginalKind,
			Inherit:      in.Data.Inherit,
			ContextText:  in.Data.ContextText,
			ContextKind:  in.Data.ContextKind,
		}
	case dataTimeZone:
		if in.Data.Zone == nil {
			return errors.New("timezone data without zone")
		}
		er.Data = TimeZoneData{Zone: *in.Data.Zone}
	default:
		return errors.Errorf("unknown extra data kind %q", in.Data.Kind)
	}
	return nil
}

// EncodeResults serializes a result list.
func EncodeResults(ers []ExtractResult) ([]byte, error) {
	if ers == nil {
		ers = []ExtractResult{}
	}
	b, err := json.Marshal(ers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode extract results")
	}
	return b, nil
}

// DecodeResults parses a result list written by EncodeResults.
func DecodeResults(b []byte) ([]ExtractResult, error) {
	var ers []ExtractResult
	if err := json.Unmarshal(b, &ers); err != nil {
		return nil, errors.Wrap(err, "failed to decode extract results")
	}
	return ers, nil
}

// CloneResults deep copies a result list so callers cannot alias cached
// metadata or payloads.
func CloneResults(ers []ExtractResult) []ExtractResult {
	if ers == nil {
		return nil
	}
	out := make([]ExtractResult, len(ers))
	for i, er := range ers {
		out[i] = cloneResult(er)
	}
	return out
}

func cloneResult(er ExtractResult) ExtractResult {
	c := er
	if er.Metadata != nil {
		md := *er.Metadata
		c.Metadata = &md
	}
	switch d := er.Data.(type) {
	case CompoundDurationData:
		c.Data = CompoundDurationData{Kind: d.Kind, Parts: CloneResults(d.Parts)}
	case TimeZoneData:
		c.Data = TimeZoneData{Zone: cloneResult(d.Zone)}
	}
	return c
}
