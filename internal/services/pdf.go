package services

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

type PDFService interface {
	Inspect(filePath string) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
	FilePath  string
}

type pdfService struct{}

func NewPDFService() PDFService {
	return &pdfService{}
}

// Inspect verifies the file is a readable PDF before it is submitted to the
// agent, and reports its page count.
func (p *pdfService) Inspect(filePath string) (*PDFInfo, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	return &PDFInfo{
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}
