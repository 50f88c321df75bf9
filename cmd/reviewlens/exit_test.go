package main

import (
	"errors"
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEngineError_ConfigErrorMapsToExit2(t *testing.T) {
	err := classifyEngineError(&engine.ConfigError{Message: "bad provider"})
	var ec exitCoder
	assert.True(t, errors.As(err, &ec))
	assert.Equal(t, 2, ec.ExitCode())
}

func TestClassifyEngineError_OtherErrorMapsToExit3(t *testing.T) {
	err := classifyEngineError(&engine.DiffParserError{Cause: errors.New("bad header")})
	var ec exitCoder
	assert.True(t, errors.As(err, &ec))
	ecVal, _ := err.(exitCoder)
	assert.Equal(t, 3, ecVal.ExitCode())
}

func TestClassifyEngineError_NilIsNil(t *testing.T) {
	assert.Nil(t, classifyEngineError(nil))
}

func TestThresholdExceeded(t *testing.T) {
	tests := []struct {
		name      string
		issues    []config.Severity
		threshold config.Severity
		want      bool
	}{
		{"empty issues never exceed", nil, config.SeverityLow, false},
		{"issue at threshold exceeds", []config.Severity{config.SeverityHigh}, config.SeverityHigh, true},
		{"issue above threshold exceeds", []config.Severity{config.SeverityCritical}, config.SeverityHigh, true},
		{"issue below threshold does not exceed", []config.Severity{config.SeverityLow}, config.SeverityHigh, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, thresholdExceeded(tc.issues, tc.threshold))
		})
	}
}
