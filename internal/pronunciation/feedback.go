package pronunciation

import "github.com/example/hanbot/pkg/models"

// confusedPairs lists characters that speech recognizers and learners
// routinely swap. Membership grants partial credit during character
// grading; the table is symmetric.
var confusedPairs = [][2]rune{
	{'他', '她'},
	{'他', '它'},
	{'她', '它'},
	{'的', '得'},
	{'的', '地'},
	{'得', '地'},
	{'在', '再'},
	{'做', '作'},
	{'那', '哪'},
	{'吗', '妈'},
	{'吧', '把'},
	{'以', '已'},
	{'买', '卖'},
	{'进', '近'},
	{'说', '水'},
	{'是', '时'},
}

func confusedWith(a, b rune) bool {
	for _, pair := range confusedPairs {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

// toneSensitive marks characters whose meaning flips on tone alone
// (ma/mai/si style homophone families). Missing one of these in the
// transcript is the strongest textual hint of a tone error.
var toneSensitive = map[rune]bool{
	'妈': true, '马': true, '吗': true, '骂': true,
	'买': true, '卖': true,
	'四': true, '十': true, '是': true,
	'问': true, '吻': true,
	'汤': true, '糖': true,
	'水': true, '睡': true,
	'眼': true, '烟': true,
	'想': true, '像': true,
}

// Feedback strings per score tier
var feedbackByTier = map[models.ScoreTier]string{
	models.ScoreExcellent: "Excellent pronunciation! Your speech was clear and accurate.",
	models.ScoreGood:      "Good job! Your pronunciation is mostly accurate with minor issues.",
	models.ScoreFair:      "Fair attempt. Several sounds need more practice.",
	models.ScorePoor:      "Keep practicing! Try listening to the example again and repeat slowly.",
}

const (
	suggestionRetry        = "Could not hear you clearly - try speaking again"
	suggestionCompleteness = "Part of the phrase was missing - try to say the whole phrase"
	suggestionTones        = "Pay attention to the tones - they change the meaning of a word"
	suggestionPacing       = "Speak at a natural pace, neither rushed nor dragging"
	suggestionSlowDown     = "Break the phrase into syllables and practice each one"
)

func feedbackFor(tier models.ScoreTier) string {
	return feedbackByTier[tier]
}

// suggestionsFor selects practice hints from fixed tables keyed by tier
// plus secondary checks on the sub-scores.
func suggestionsFor(tier models.ScoreTier, details models.PronunciationDetails, transcriptLen, expectedLen int) []string {
	var suggestions []string

	if expectedLen > 0 && float64(transcriptLen) < 0.5*float64(expectedLen) {
		suggestions = append(suggestions, suggestionCompleteness)
	}
	if details.ToneAccuracy < 0.7 {
		suggestions = append(suggestions, suggestionTones)
	}
	if details.Fluency < 0.7 {
		suggestions = append(suggestions, suggestionPacing)
	}
	if tier == models.ScorePoor && len(suggestions) == 0 {
		suggestions = append(suggestions, suggestionSlowDown)
	}

	return suggestions
}
