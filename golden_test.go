package kwpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssembleGolden(t *testing.T) {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no report files found under %s", root)
	}
	for _, path := range paths {
		path := path
		t.Run(path, func(t *testing.T) {
			report, _, err := LoadReport(path)
			if err != nil {
				t.Fatalf("load %s: %v", path, err)
			}
			goldenPath := strings.TrimSuffix(path, ".json") + ".golden"
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("read golden %s: %v", goldenPath, err)
			}
			got := FormatBlocks(Assemble(report))
			if string(want) != got {
				diff := firstDiffContext(string(want), got, 3)
				t.Fatalf("golden mismatch %s (regenerate with go run ./cmd/gen-golden)\n%s", path, diff)
			}
		})
	}
}

func TestGoldenReportsMatchSchema(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if err := CheckSchema(data); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
	}
}

func firstDiffContext(want string, got string, ctx int) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	max := len(wantLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	diffAt := -1
	for i := 0; i < max; i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			diffAt = i
			break
		}
	}
	if diffAt == -1 {
		return "---want---\n" + want + "\n---got---\n" + got
	}
	start := diffAt - ctx
	if start < 0 {
		start = 0
	}
	end := diffAt + ctx
	if end >= max {
		end = max - 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "first difference at line %d\n", diffAt+1)
	b.WriteString("---want---\n")
	for i := start; i <= end; i++ {
		line := ""
		if i < len(wantLines) {
			line = wantLines[i]
		}
		fmt.Fprintf(&b, "%5d | %s\n", i+1, line)
	}
	b.WriteString("---got---\n")
	for i := start; i <= end; i++ {
		line := ""
		if i < len(gotLines) {
			line = gotLines[i]
		}
		fmt.Fprintf(&b, "%5d | %s\n", i+1, line)
	}
	return b.String()
}
