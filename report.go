package kwpdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Field is a loosely typed scalar from the report. Strings keep their value;
// any other JSON value keeps its JSON text. Null and missing fields are unset.
type Field struct {
	str   string
	raw   json.RawMessage
	isStr bool
	set   bool
}

// Text returns a set string Field.
func Text(s string) Field {
	return Field{str: s, isStr: true, set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = Field{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &f.str); err != nil {
			return err
		}
		f.isStr = true
		f.set = true
		return nil
	}
	f.raw = append(json.RawMessage(nil), trimmed...)
	f.set = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	switch {
	case !f.set:
		return []byte("null"), nil
	case f.isStr:
		return json.Marshal(f.str)
	default:
		return f.raw, nil
	}
}

// IsSet reports whether the field was present and not null.
func (f Field) IsSet() bool { return f.set }

// Value returns the field for normalization: a string, a json.RawMessage, or nil.
func (f Field) Value() any {
	switch {
	case !f.set:
		return nil
	case f.isStr:
		return f.str
	default:
		return f.raw
	}
}

// String returns the textual representation of the field.
func (f Field) String() string {
	return textOf(f.Value())
}

// Or returns the field text, or fallback when the field is unset.
func (f Field) Or(fallback string) string {
	if !f.set {
		return fallback
	}
	return f.String()
}

// DateRange is the reporting period.
type DateRange struct {
	Start Field `json:"start"`
	End   Field `json:"end"`
}

// Cluster groups related words under a main topic.
type Cluster struct {
	MainTopic    Field   `json:"main_topic"`
	RelatedWords []Field `json:"related_words"`
}

// Bookmark is one saved article.
type Bookmark struct {
	Title   Field `json:"title"`
	URL     Field `json:"url"`
	Summary Field `json:"summary"`
}

// Report is the decoded input document.
type Report struct {
	Keywords        Field      `json:"keywords"`
	DateRange       DateRange  `json:"date_range"`
	OverallSummary  Field      `json:"overall_summary"`
	Summary         Field      `json:"summary"`
	RelatedClusters []Cluster  `json:"related_clusters"`
	Analysis        Field      `json:"analysis"`
	Bookmarks       []Bookmark `json:"bookmarks"`
}

// SummaryValue returns overall_summary when set, otherwise summary.
func (r Report) SummaryValue() any {
	if r.OverallSummary.IsSet() {
		return r.OverallSummary.Value()
	}
	return r.Summary.Value()
}

// DecodeReport parses a report from JSON. A leading UTF-8 byte order mark is ignored.
func DecodeReport(data []byte) (Report, error) {
	data = trimBOM(data)
	if err := ValidateInput(data); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	return r, nil
}

// LoadReport reads and decodes the report at path.
func LoadReport(path string) (Report, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Report{}, nil, fmt.Errorf("read input: %w", err)
	}
	r, err := DecodeReport(data)
	if err != nil {
		return Report{}, data, err
	}
	return r, data, nil
}
