package quiz

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// HashQuestion fingerprints a question by its text and option sequence.
// Option order is part of the identity; the correct option is not.
func HashQuestion(text string, options []string) string {
	sum := sha256.Sum256([]byte(text + strings.Join(options, "")))
	return hex.EncodeToString(sum[:])
}

// HashQuiz fingerprints a quiz by its title and the digests of its questions.
// The digests are sorted before joining, so authoring order does not change
// quiz identity while question content membership does.
func HashQuiz(title string, questions []QuestionInput) string {
	hashes := make([]string, len(questions))
	for i, q := range questions {
		hashes[i] = HashQuestion(q.Text, q.Options)
	}
	sort.Strings(hashes)
	sum := sha256.Sum256([]byte(title + strings.Join(hashes, "")))
	return hex.EncodeToString(sum[:])
}
