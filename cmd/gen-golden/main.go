package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/kwpdf"
)

func main() {
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
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no report files found under %s", root)
	}
	for _, path := range paths {
		report, _, err := kwpdf.LoadReport(path)
		if err != nil {
			fatalf("load %s: %v", path, err)
		}
		out := kwpdf.FormatBlocks(kwpdf.Assemble(report))
		goldenPath := strings.TrimSuffix(path, ".json") + ".golden"
		if err := os.WriteFile(goldenPath, []byte(out), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
