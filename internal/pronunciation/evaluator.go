package pronunciation

import (
	"strings"
	"unicode"

	"github.com/example/hanbot/pkg/models"
)

// Composite accuracy weights
const (
	weightCharacter  = 0.4
	weightSimilarity = 0.3
	weightTone       = 0.2
	weightFluency    = 0.1
)

// Score tier thresholds on the 0-1 composite accuracy
const (
	tierExcellent = 0.9
	tierGood      = 0.75
	tierFair      = 0.5
)

// Grading a single character against its best match in the transcript
const (
	similarityExact    = 1.0
	similarityConfused = 0.7
	characterThreshold = 0.8
	tonePenalty        = 0.1
)

// Evaluator scores a recognized-speech or typed transcript against the
// expected target text. It operates on text only: the transcript comes
// from an external speech recognizer, no audio is processed here.
type Evaluator struct{}

// NewEvaluator creates a new evaluator instance
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate compares a transcript with the expected text and returns a
// scored result. It never fails: an empty or whitespace-only transcript
// yields the low end of the range rather than an error.
func (e *Evaluator) Evaluate(transcript, expected, language string) models.PronunciationResult {
	normTranscript := normalizeText(transcript)
	normExpected := normalizeText(expected)

	result := models.PronunciationResult{
		DetectedText: transcript,
		ExpectedText: expected,
	}

	// Nothing usable to compare on either side
	if normTranscript == "" || normExpected == "" {
		result.Score = models.ScorePoor
		result.Feedback = feedbackFor(models.ScorePoor)
		result.Suggestions = []string{suggestionRetry}
		return result
	}

	transcriptRunes := significantRunes(normTranscript)
	expectedRunes := significantRunes(normExpected)

	charAccuracy := characterAccuracy(expectedRunes, transcriptRunes)
	similarity := levenshteinSimilarity(normExpected, normTranscript)

	toneAccuracy := 1.0
	if isCJK(language, expectedRunes) {
		toneAccuracy = toneAccuracyProxy(charAccuracy, expectedRunes, transcriptRunes)
	}

	lengthScore := lengthRatioScore(len(transcriptRunes), len(expectedRunes))
	fluency := fluencyScore(lengthScore, normTranscript, normExpected)

	composite := weightCharacter*charAccuracy +
		weightSimilarity*similarity +
		weightTone*toneAccuracy +
		weightFluency*fluency

	result.Accuracy = composite * 100
	result.Confidence = confidence(len(transcriptRunes), len(expectedRunes))
	result.Score = tierFor(composite)
	result.Details = models.PronunciationDetails{
		CharacterAccuracy: charAccuracy,
		ToneAccuracy:      toneAccuracy,
		Fluency:           fluency,
		Timing:            lengthScore,
	}
	result.Feedback = feedbackFor(result.Score)
	result.Suggestions = suggestionsFor(result.Score, result.Details, len(transcriptRunes), len(expectedRunes))

	return result
}

// normalizeText lowercases the input and strips everything except letters,
// digits and CJK ideographs, collapsing runs of whitespace to single spaces.
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// significantRunes returns the runes of a normalized string without spaces
func significantRunes(s string) []rune {
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if r != ' ' {
			runes = append(runes, r)
		}
	}
	return runes
}

// characterAccuracy grades every expected character against its best match
// anywhere in the transcript: exact hits score 1.0, commonly confused pairs
// get partial credit, everything else scores 0. A character counts as
// correct when its best similarity clears the threshold.
func characterAccuracy(expected, transcript []rune) float64 {
	if len(expected) == 0 {
		return 0
	}

	correct := 0
	for _, want := range expected {
		best := 0.0
		for _, got := range transcript {
			sim := charSimilarity(want, got)
			if sim > best {
				best = sim
			}
			if best == similarityExact {
				break
			}
		}
		if best >= characterThreshold {
			correct++
		}
	}
	return float64(correct) / float64(len(expected))
}

func charSimilarity(a, b rune) float64 {
	if a == b {
		return similarityExact
	}
	if confusedWith(a, b) {
		return similarityConfused
	}
	return 0
}

// levenshteinSimilarity is the normalized edit-distance similarity between
// two strings: (maxLen - distance) / maxLen.
func levenshteinSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 0
	}
	return float64(maxLen-levenshtein(ra, rb)) / float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// toneAccuracyProxy approximates tonal correctness from text alone: each
// tone-sensitive homophone expected but missing from the transcript takes
// a fixed penalty off the character accuracy, floored at 0. A real pitch
// analysis would need audio, which this engine never sees.
func toneAccuracyProxy(charAccuracy float64, expected, transcript []rune) float64 {
	present := make(map[rune]bool, len(transcript))
	for _, r := range transcript {
		present[r] = true
	}

	score := charAccuracy
	for _, r := range expected {
		if toneSensitive[r] && !present[r] {
			score -= tonePenalty
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// lengthRatioScore rates the transcript length against the expected length:
// anything between half and double the expected length passes at full score.
func lengthRatioScore(transcriptLen, expectedLen int) float64 {
	if expectedLen == 0 {
		return 0
	}
	ratio := float64(transcriptLen) / float64(expectedLen)
	if ratio >= 0.5 && ratio <= 2.0 {
		return 1.0
	}
	return 0.7
}

// fluencyScore averages the length-ratio score with a word-count
// completeness ratio, capped at 1.0.
func fluencyScore(lengthScore float64, transcript, expected string) float64 {
	expectedWords := len(strings.Fields(expected))
	if expectedWords == 0 {
		return 0
	}
	completeness := float64(len(strings.Fields(transcript))) / float64(expectedWords)
	if completeness > 1 {
		completeness = 1
	}

	fluency := (lengthScore + completeness) / 2
	if fluency > 1 {
		fluency = 1
	}
	return fluency
}

func confidence(transcriptLen, expectedLen int) float64 {
	if expectedLen == 0 || transcriptLen == 0 {
		return 0
	}
	c := float64(transcriptLen) / float64(expectedLen)
	if c > 1 {
		c = 1
	}
	return c
}

func tierFor(composite float64) models.ScoreTier {
	switch {
	case composite >= tierExcellent:
		return models.ScoreExcellent
	case composite >= tierGood:
		return models.ScoreGood
	case composite >= tierFair:
		return models.ScoreFair
	default:
		return models.ScorePoor
	}
}

// isCJK reports whether tone scoring applies: either the language tag says
// so or the expected text itself is written in CJK ideographs.
func isCJK(language string, expected []rune) bool {
	lang := strings.ToLower(language)
	for _, prefix := range []string{"zh", "yue", "ja", "ko"} {
		if strings.HasPrefix(lang, prefix) {
			return true
		}
	}
	for _, r := range expected {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
