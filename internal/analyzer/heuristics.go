package analyzer

import (
	"regexp"
	"strings"
)

// Tone heuristic thresholds. A letter is penalized when more than 2% of its
// words are informal markers, and when its average sentence length drifts
// outside the 8-28 word window; courteous phrases earn a small bonus.
const (
	informalRatioLimit  = 0.02
	informalPenaltyCap  = 0.5
	sentenceLenIdealMin = 8.0
	sentenceLenIdealMax = 28.0
	sentencePenaltyCap  = 0.3
	courteousBonus      = 0.1
)

// Length heuristic: score is 1.0 between 200 and 400 words, falls off
// linearly to 0 at 50 words on the short side and 800 on the long side.
const (
	lengthFloor   = 50.0
	lengthIdealLo = 200.0
	lengthIdealHi = 400.0
	lengthCeil    = 800.0
)

var informalMarkers = map[string]struct{}{
	"gonna": {}, "wanna": {}, "gotta": {}, "hey": {}, "yeah": {},
	"cool": {}, "awesome": {}, "stuff": {}, "guys": {}, "kinda": {},
	"sorta": {}, "lol": {}, "btw": {}, "ok": {}, "okay": {},
}

var courteousPhrases = []string{
	"thank you", "sincerely", "dear", "best regards", "kind regards",
	"i look forward",
}

var reSentenceEnd = regexp.MustCompile(`[.!?]+`)

// toneScore rates how professional the letter reads, in [0,1]. Empty input
// scores 0.
func toneScore(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)

	score := 1.0

	informal := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		if _, ok := informalMarkers[w]; ok {
			informal++
		}
	}
	ratio := float64(informal) / float64(len(words))
	if ratio > informalRatioLimit {
		penalty := ratio * 10
		if penalty > informalPenaltyCap {
			penalty = informalPenaltyCap
		}
		score -= penalty
	}

	if avg := avgSentenceLength(lower); avg > 0 {
		var drift float64
		switch {
		case avg < sentenceLenIdealMin:
			drift = (sentenceLenIdealMin - avg) / sentenceLenIdealMin
		case avg > sentenceLenIdealMax:
			drift = (avg - sentenceLenIdealMax) / sentenceLenIdealMax
		}
		if drift > 1 {
			drift = 1
		}
		score -= drift * sentencePenaltyCap
	}

	for _, phrase := range courteousPhrases {
		if strings.Contains(lower, phrase) {
			score += courteousBonus
			break
		}
	}

	return clamp01(score)
}

func avgSentenceLength(lower string) float64 {
	sentences := reSentenceEnd.Split(lower, -1)
	total, count := 0, 0
	for _, s := range sentences {
		n := len(strings.Fields(s))
		if n == 0 {
			continue
		}
		total += n
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// lengthScore rates the word count of the letter against the target range.
func lengthScore(text string) float64 {
	wc := float64(len(strings.Fields(text)))
	switch {
	case wc <= lengthFloor:
		return 0
	case wc < lengthIdealLo:
		return (wc - lengthFloor) / (lengthIdealLo - lengthFloor)
	case wc <= lengthIdealHi:
		return 1
	case wc < lengthCeil:
		return (lengthCeil - wc) / (lengthCeil - lengthIdealHi)
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
