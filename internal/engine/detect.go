package engine

import "regexp"

// questionMarkers matches interrogative punctuation and keywords in
// Traditional and Simplified Chinese. The set is fixed.
var questionMarkers = regexp.MustCompile(`\?|？|怎麼|如何|為什麼|嗎|能不能|可不可以|怎么|为什么|吗`)

// IsQuestionLike reports whether a comment reads like a fan question.
// Pure string matching, no IO.
func IsQuestionLike(text string) bool {
	return questionMarkers.MatchString(text)
}

// FilterQuestions keeps the question-like comments, preserving order.
// An empty result is a valid outcome.
func FilterQuestions(comments []Comment) []Comment {
	var out []Comment
	for _, c := range comments {
		if IsQuestionLike(c.Text) {
			out = append(out, c)
		}
	}
	return out
}
