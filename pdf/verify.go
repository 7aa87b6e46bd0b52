package pdf

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Verify validates a PDF with pdfcpu in relaxed mode and returns its page count.
func Verify(rs io.ReadSeeker) (int, error) {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(rs, conf); err != nil {
		return 0, fmt.Errorf("pdf verify: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("pdf verify: rewind: %w", err)
	}
	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return 0, fmt.Errorf("pdf verify: page count: %w", err)
	}
	return pages, nil
}

// VerifyFile runs Verify on the file at path.
func VerifyFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("pdf verify: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Verify(f)
}
