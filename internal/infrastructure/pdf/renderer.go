package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"writeoff-service/internal/domain/writeoff"
)

// ReceiptRenderer produces a minimal single-page PDF receipt for a write-off.
// Output is deterministic for a given write-off, so the stored content hash
// stays stable across regenerations of unchanged data.
type ReceiptRenderer struct{}

func NewReceiptRenderer() ReceiptRenderer { return ReceiptRenderer{} }

func (ReceiptRenderer) Render(_ context.Context, w *writeoff.WriteOff) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("pdf: nil write-off")
	}
	lines := []string{
		"Write-off receipt",
		fmt.Sprintf("Write-off #%d", w.ID),
		fmt.Sprintf("User #%d", w.ToID),
		"Amount: " + formatCents(w.Amount),
	}
	return build(lines), nil
}

func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%sEUR %d.%02d", sign, c/100, c%100)
}

// build assembles a valid PDF 1.4 document: catalog, page tree, one A4 page,
// Helvetica, and a text content stream with the given lines.
func build(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 12 Tf\n16 TL\n50 780 Td\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("T*\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", escapeText(l))
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

// escapeText guards the three characters with meaning inside PDF strings.
func escapeText(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}
