package kwpdf

import (
	"fmt"
	"strings"
	"testing"
)

func TestLabelsByName(t *testing.T) {
	if got := AvailableLabels(); strings.Join(got, ",") != "en,ja" {
		t.Fatalf("unexpected label sets: %v", got)
	}
	def, ok := LabelsByName("")
	if !ok || def.Name != "ja" {
		t.Fatalf("empty name should select ja, got %q", def.Name)
	}
	if DefaultLabels().Name != "ja" {
		t.Fatalf("default labels should be ja")
	}
	en, ok := LabelsByName("EN")
	if !ok || en.Name != "en" {
		t.Fatalf("expected en labels")
	}
	if _, ok := LabelsByName("fr"); ok {
		t.Fatalf("unexpected fr labels")
	}
}

func TestLabelFormats(t *testing.T) {
	for _, name := range AvailableLabels() {
		l, _ := LabelsByName(name)
		title := fmt.Sprintf(l.Title, "kw")
		if !strings.Contains(title, "kw") || strings.Contains(title, "%!") {
			t.Fatalf("%s: bad title format %q", name, l.Title)
		}
		period := fmt.Sprintf(l.Period, "a", "b")
		if !strings.Contains(period, "a") || !strings.Contains(period, "b") || strings.Contains(period, "%!") {
			t.Fatalf("%s: bad period format %q", name, l.Period)
		}
		for _, s := range []string{l.Summary, l.Related, l.Analysis, l.Contents, l.Details, l.SummaryLabel, l.URLPrefix} {
			if s == "" {
				t.Fatalf("%s: empty label in %+v", name, l)
			}
		}
	}
}
