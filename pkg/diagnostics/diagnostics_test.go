package diagnostics

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConsoleWritesPlainLinesToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Diagnostic{Severity: Info, Code: UnresolvedReference, Source: "Contoso", Message: "unable to resolve assembly 'System.Runtime'"})
	c.Report(Diagnostic{Severity: Warning, Code: UnreadableModule, Message: "bad.yaml: parse error"})

	assert.Equal(t,
		"info: Contoso: unable to resolve assembly 'System.Runtime'\nwarning: bad.yaml: parse error\n",
		buf.String())
}

func TestCollectorAndTee(t *testing.T) {
	var first, second Collector
	sink := Tee(&first, &second, Discard)

	sink.Report(Diagnostic{Code: UnresolvedForward, Message: "x"})

	assert.Len(t, first.Diagnostics(), 1)
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
}

func TestLoggerSink(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(zerolog.New(&buf)).Report(Diagnostic{Severity: Info, Code: UnresolvedReference, Source: "A", Message: "missing B"})

	assert.Contains(t, buf.String(), `"code":"unresolved-reference"`)
	assert.Contains(t, buf.String(), `"message":"missing B"`)
}
