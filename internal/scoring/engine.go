package scoring

import (
	"errors"
	"fmt"
)

// ErrIncompleteAnswers 答案数量与题目数量不一致
var ErrIncompleteAnswers = errors.New("answer list is incomplete: one answer per question is required")

// UnknownOptionError reports a selected option that does not exist in the
// canonical table for its question. Missing or stale options must fail loudly
// instead of silently scoring as zero.
type UnknownOptionError struct {
	QuestionIndex int
	OptionIndex   int
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("question %d has no option %d", e.QuestionIndex, e.OptionIndex)
}

// ClusterScores 三个聚类的加权累计分
type ClusterScores struct {
	CA     int `json:"ca"`
	HYPRA  int `json:"hypra"`
	PCOMIR int `json:"pcomir"`
}

// Total is the sum over all clusters, kept for the response row.
func (s ClusterScores) Total() int {
	return s.CA + s.HYPRA + s.PCOMIR
}

// Diagnosis is one label of the closed classification set.
type Diagnosis struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// Classification thresholds. Tied to the weight/multiplier table in
// questions.go: the two move together or the labels silently change meaning.
const (
	thresholdCA     = 20
	thresholdHYPRA  = 20
	thresholdPCOMIR = 10
)

var (
	diagnosisFullPattern = Diagnosis{
		Code:    "HCA-PCO",
		Label:   "HCA-PCO (Possible PCOS)",
		Summary: "Several symptoms point to a combined cycle, androgen and metabolic pattern. Consider confirming this with a clinician.",
	}
	diagnosisCycleAndrogen = Diagnosis{
		Code:    "H-CA",
		Label:   "H-CA (Cycle + Androgen Signs)",
		Summary: "Your answers combine cycle irregularity with androgen-related signs. A hormone panel would help clarify the picture.",
	}
	diagnosisAndrogenMetabolic = Diagnosis{
		Code:    "H-PCO",
		Label:   "H-PCO (Androgenic + Metabolic Signs)",
		Summary: "You show signs of both hormone and metabolic imbalance. A tailored approach is recommended.",
	}
	diagnosisCycleMetabolic = Diagnosis{
		Code:    "PCO-CA",
		Label:   "PCO-CA (Cycle + Metabolic Signs)",
		Summary: "Cycle irregularity together with metabolic signs may reflect subtle hormonal fluctuations worth monitoring.",
	}
	diagnosisBaseline = Diagnosis{
		Code:    "NONE",
		Label:   "No strong hormonal patterns detected",
		Summary: "Your cycle and symptoms seem generally balanced. Keep observing changes month-to-month.",
	}
)

// ScoreAnswers turns one option index per question into per-cluster sums.
// answers must hold exactly QuestionCount entries in question order; option
// identity is index-based so display wording can change without touching
// scoring.
func ScoreAnswers(answers []int) (ClusterScores, error) {
	var scores ClusterScores
	if len(answers) != len(Questions) {
		return ClusterScores{}, ErrIncompleteAnswers
	}
	for i, optionIndex := range answers {
		q := Questions[i]
		if optionIndex < 0 || optionIndex >= len(q.Options) {
			return ClusterScores{}, &UnknownOptionError{QuestionIndex: i, OptionIndex: optionIndex}
		}
		points := q.Options[optionIndex].Weight * q.Multiplier
		switch q.Cluster {
		case ClusterCA:
			scores.CA += points
		case ClusterHYPRA:
			scores.HYPRA += points
		case ClusterPCOMIR:
			scores.PCOMIR += points
		}
	}
	return scores, nil
}

// Classify maps cluster scores to a diagnosis via an ordered cascade.
// The rules are not mutually exclusive: first match wins, so boundary triples
// such as (20, 20, 10) resolve to the full pattern and never fall through.
func Classify(scores ClusterScores) Diagnosis {
	ca := scores.CA >= thresholdCA
	hypra := scores.HYPRA >= thresholdHYPRA
	pcomir := scores.PCOMIR >= thresholdPCOMIR

	switch {
	case ca && hypra && pcomir:
		return diagnosisFullPattern
	case ca && hypra:
		return diagnosisCycleAndrogen
	case hypra && pcomir:
		return diagnosisAndrogenMetabolic
	case ca && pcomir:
		return diagnosisCycleMetabolic
	default:
		return diagnosisBaseline
	}
}

// Recommend emits per-answer tips in question order. It is deliberately
// independent of Classify: a single severe answer produces its tip even when
// the overall diagnosis stays at baseline.
func Recommend(answers []int) ([]string, error) {
	if len(answers) != len(Questions) {
		return nil, ErrIncompleteAnswers
	}
	var recs []string
	for i, optionIndex := range answers {
		q := Questions[i]
		if optionIndex < 0 || optionIndex >= len(q.Options) {
			return nil, &UnknownOptionError{QuestionIndex: i, OptionIndex: optionIndex}
		}
		if q.Options[optionIndex].Weight >= q.TriggerWeight {
			recs = append(recs, q.Recommendation)
		}
	}
	return recs, nil
}

// Evaluate runs the full pipeline for a completed answer list.
func Evaluate(answers []int) (ClusterScores, Diagnosis, []string, error) {
	scores, err := ScoreAnswers(answers)
	if err != nil {
		return ClusterScores{}, Diagnosis{}, nil, err
	}
	recs, err := Recommend(answers)
	if err != nil {
		return ClusterScores{}, Diagnosis{}, nil, err
	}
	return scores, Classify(scores), recs, nil
}
