package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentInitAndCut(t *testing.T) {
	data := NewDocument(32).Cut().Bytes()

	assert.True(t, bytes.HasPrefix(data, []byte{ESC, '@'}))
	assert.True(t, bytes.HasSuffix(data, []byte{GS, 'V', 0x00}))
}

func TestDocumentKeyValueAlignment(t *testing.T) {
	data := NewDocument(32).KeyValue("Subtotal:", "140.00").Bytes()

	lines := strings.Split(string(data), string(rune(LF)))
	// First line after the init bytes
	line := strings.TrimPrefix(lines[0], string([]byte{ESC, '@'}))
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Subtotal:"))
	assert.True(t, strings.HasSuffix(line, "140.00"))
}

func TestDocumentKeyValueOverflowKeepsGap(t *testing.T) {
	long := strings.Repeat("a", 30)
	data := NewDocument(32).KeyValue(long, "140.00").Bytes()

	assert.Contains(t, string(data), long+" "+"140.00")
}

func TestDocumentSeparatorWidth(t *testing.T) {
	data := NewDocument(48).Separator('-').Bytes()

	assert.Contains(t, string(data), strings.Repeat("-", 48))
}

func TestDocumentItemLine(t *testing.T) {
	data := NewDocument(32).ItemLine(2, "Basmati Rice", "100.00").Bytes()

	assert.Contains(t, string(data), "2x Basmati Rice")
	assert.Contains(t, string(data), "100.00")
}

func TestDocumentDefaultsWidth(t *testing.T) {
	data := NewDocument(0).Separator('=').Bytes()

	assert.Contains(t, string(data), strings.Repeat("=", 32))
}
