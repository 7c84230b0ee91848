package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyTextLogHandlerKeepsFormatAcrossGroups(t *testing.T) {
	assert := assert.New(t)
	color.NoColor = true

	var buffer bytes.Buffer
	logger := slog.New(NewPrettyTextLogHandler(&buffer, PrettyHandlerOptions{}))

	logger.WithGroup("tx").With("hash", "0xabc").Info("broadcast", "gas", 21000)

	line := buffer.String()
	assert.Contains(line, CODENAME_SHORT)
	assert.Contains(line, "broadcast")
	assert.Contains(line, "tx.hash=0xabc")
	assert.Contains(line, "tx.gas=21000")
}

func TestPrettyTextLogHandlerWithAttrs(t *testing.T) {
	assert := assert.New(t)
	color.NoColor = true

	var buffer bytes.Buffer
	logger := slog.New(NewPrettyTextLogHandler(&buffer, PrettyHandlerOptions{}))

	logger.With("request", "r-1").Info("authorized")
	assert.Contains(buffer.String(), "request=r-1")
}
