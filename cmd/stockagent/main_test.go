package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockagent/internal/services/analysis"
	"stockagent/pkg/errors"
)

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, analysis.Result{Response: "Adobe summary"})
	assert.Equal(t, "=== Stock Analysis Results ===\nAdobe summary\n", out.String())

	out.Reset()
	printResult(&out, analysis.Result{Err: errors.ErrExternal})
	assert.Equal(t, "ERROR: Error analyzing stock: "+errors.ErrExternal.Error()+"\n", out.String())
}
