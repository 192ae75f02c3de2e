package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText parses a PDF held in memory to plain text. Any parse
// failure is fatal to the ingestion of that document.
func extractPDFText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf buffer")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	buf := new(strings.Builder)
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}
