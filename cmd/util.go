package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/busebalkan99/design-checklist-vercel/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()

	greenCheck = green("✔")
	redCross   = red("✘")
)

// BeQuietError signals that the failure was already reported to the user.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "command failed"
}

// logError reports err with its correlation ID and returns a BeQuietError.
func logError(err error, correlation, msg string) error {
	if correlation == "" {
		var apiErr client.APIError
		if errors.As(err, &apiErr) {
			correlation = apiErr.CorrelationID
		}
	}
	log.Error().Msgf("%s %s (correlation ID: %s)", redCross, msg, correlation)

	var apiErr client.APIError
	if errors.As(err, &apiErr) {
		log.Error().Msgf("%s (%d): %s", apiErr.Code, apiErr.StatusCode, apiErr.Message)
	} else {
		log.Error().Msgf("error: %v", err)
	}
	return BeQuietError{}
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return faint("(none)")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func printField(name string, value any) {
	fmt.Printf("  %s: %v\n", faint(name), value)
}
