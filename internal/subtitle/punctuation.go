package subtitle

import "unicode/utf8"

// sentenceTerminators end a sentence and force a segment boundary during
// per-chunk buffering, regardless of accumulated length.
var sentenceTerminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {},
}

// clausePunctuation marks clause-level break points used by the CJK
// splitting path. Each clause keeps its trailing marker.
var clausePunctuation = map[rune]struct{}{
	',': {}, ';': {}, ':': {},
	'，': {}, '、': {}, '；': {}, '：': {},
}

// EndsWithSentenceTerminator reports whether text ends with a sentence
// terminator.
func EndsWithSentenceTerminator(text string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	_, ok := sentenceTerminators[r]
	return ok
}

func isClausePunctuation(r rune) bool {
	_, ok := clausePunctuation[r]
	return ok
}
