package pdfext

import (
	"bytes"
	"errors"
	"io"

	"github.com/ledongthuc/pdf"

	"summarybot/pkg/web"
)

var (
	ErrEmptyPDF  = errors.New("pdf content is empty")
	ErrNoPDFText = errors.New("pdf contains no extractable text")
	errNilReader = errors.New("pdf source reader is nil")
	errEmptyPath = errors.New("pdf path is empty")
	errNilPDFDoc = errors.New("pdf document is nil")
)

// ExtractFile extracts the text of a PDF on disk as paragraphs ready for
// summarization.
func ExtractFile(path string) ([]string, error) {
	if path == "" {
		return nil, errEmptyPath
	}

	file, doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return paragraphs(doc)
}

// Extract extracts the text of a PDF supplied as a stream, typically a
// downloaded Telegram document.
func Extract(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errNilReader
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if len(data) == 0 {
		return nil, ErrEmptyPDF
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	return paragraphs(doc)
}

func paragraphs(doc *pdf.Reader) ([]string, error) {
	if doc == nil {
		return nil, errNilPDFDoc
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return nil, err
	}

	paras := web.SplitParagraphs(buf.String())
	if len(paras) == 0 {
		return nil, ErrNoPDFText
	}
	return paras, nil
}
