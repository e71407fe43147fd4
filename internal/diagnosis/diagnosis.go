// Package diagnosis turns raw predictions from the plant doctor service into
// a result the UI can render, backed by a static care table.
package diagnosis

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Prediction is the raw response of POST /doctor/predict. Confidence is
// already a 0-100 percentage.
type Prediction struct {
	Confidence     float64 `json:"confidence"`
	PredictedClass string  `json:"predicted_class"`
}

// Result is a normalized diagnosis.
type Result struct {
	Key            string   `json:"key"`
	PredictedClass string   `json:"predictedClass"`
	IsHealthy      bool     `json:"isHealthy"`
	DiseaseName    string   `json:"diseaseName,omitempty"`
	Confidence     float64  `json:"confidence"`
	Description    string   `json:"description"`
	Remedies       []string `json:"remedies,omitempty"`
	Prevention     []string `json:"prevention,omitempty"`
	Known          bool     `json:"known"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeClassKey lowercases class, collapses runs of characters outside
// [a-z0-9] into one underscore and trims underscores at both ends.
func NormalizeClassKey(class string) string {
	key := nonAlnum.ReplaceAllString(strings.ToLower(class), "_")
	return strings.Trim(key, "_")
}

// RoundConfidence rounds to two decimal places.
func RoundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}

// Interpret maps a raw prediction onto the care table.
func Interpret(p Prediction) Result {
	key := NormalizeClassKey(p.PredictedClass)
	healthy := key == "healthy" || strings.EqualFold(p.PredictedClass, "healthy")

	res := Result{
		Key:            key,
		PredictedClass: p.PredictedClass,
		IsHealthy:      healthy,
		Confidence:     RoundConfidence(p.Confidence),
	}

	entry, ok := Lookup(key)
	if healthy && !ok {
		entry, ok = Lookup("healthy")
	}
	res.Known = ok

	if !healthy {
		res.DiseaseName = displayName(key)
		if ok {
			res.DiseaseName = entry.Name
		}
	}

	if ok {
		res.Description = entry.Description
		res.Remedies = entry.Remedies
		res.Prevention = entry.Prevention
		return res
	}
	res.Description = fmt.Sprintf("%s was detected. No care notes are available for this condition yet; consult a local plant specialist for treatment options.", res.DiseaseName)
	return res
}

// displayName title-cases an underscore key: "leaf_curl" -> "Leaf Curl".
func displayName(key string) string {
	if key == "" {
		return "Unknown condition"
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
