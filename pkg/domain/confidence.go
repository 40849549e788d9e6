package domain

import "strings"

// Confidence scores a response. The scale is fixed rather than learned:
// full deterministic answers score highest, fallback and partial answers
// are discounted, and an empty answer bottoms out regardless of source.
func Confidence(text string, hadData, wasFallback, partial bool) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.3
	}
	if wasFallback {
		return 0.6
	}
	if partial {
		return 0.7
	}
	if hadData {
		return 1.0
	}
	return 0.5
}
