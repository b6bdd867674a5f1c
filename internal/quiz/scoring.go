package quiz

// SubmitOutcome is what a caller learns from a graded submission. When the
// answer is wrong, CorrectOption points at the right index; when it is
// correct, CorrectOption is nil, mirroring the answer endpoint's contract.
type SubmitOutcome struct {
	Correct       bool
	CorrectOption *int
}

// scoreAnswer is the whole scoring engine for a fixed multiple-choice model:
// compare the selected index against the answer key and build the ledger
// record. It is stateless; the ledger decides whether the record is accepted.
func scoreAnswer(q Question, selected int) AnswerRecord {
	return AnswerRecord{
		QuestionID:     q.ID,
		SelectedOption: selected,
		IsCorrect:      selected == q.CorrectOption,
	}
}

func outcomeFor(rec AnswerRecord, q Question) SubmitOutcome {
	out := SubmitOutcome{Correct: rec.IsCorrect}
	if !rec.IsCorrect {
		correct := q.CorrectOption
		out.CorrectOption = &correct
	}
	return out
}
