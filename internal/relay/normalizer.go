package relay

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// RequiredPageCount is the page length Gelato mandates for this product.
const RequiredPageCount = 39

// NormalizePageCount copies the document at srcPath to dstPath and appends
// blank pages until it holds exactly RequiredPageCount pages. A source that
// is already at the target length is copied byte-for-byte, so normalization
// is idempotent. A source exceeding the target cannot be normalized and is
// rejected. Returns the final page count of the written document.
func NormalizePageCount(srcPath, dstPath string) (int, error) {
	conf := relaxedConfiguration()

	if err := api.ValidateFile(srcPath, conf); err != nil {
		return 0, fmt.Errorf("failed to validate source PDF: %w", err)
	}
	pageCount, err := api.PageCountFile(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount > RequiredPageCount {
		return pageCount, fmt.Errorf("source has %d pages, exceeding the required %d", pageCount, RequiredPageCount)
	}

	if err := copyFile(srcPath, dstPath); err != nil {
		return 0, fmt.Errorf("failed to copy source PDF: %w", err)
	}

	// Each insert appends a single blank page after the last page ("l").
	for have := pageCount; have < RequiredPageCount; have++ {
		if err := api.InsertPagesFile(dstPath, dstPath, []string{"l"}, false, nil, conf); err != nil {
			return 0, fmt.Errorf("failed to append blank page: %w", err)
		}
	}

	finalCount, err := api.PageCountFile(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count of adjusted PDF: %w", err)
	}
	if finalCount != RequiredPageCount {
		return finalCount, fmt.Errorf("adjusted PDF has %d pages, want %d", finalCount, RequiredPageCount)
	}
	return finalCount, nil
}

func relaxedConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func copyFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
