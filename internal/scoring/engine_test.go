package scoring

import (
	"errors"
	"testing"
)

// 题序: 周期, 毛发, 痤疮, 体重, 疲劳
func mildAnswers() []int {
	return []int{1, 0, 0, 0, 0} // "Regular" + lowest option elsewhere, weight 1 each
}

func severeAnswers() []int {
	return []int{3, 3, 3, 3, 3}
}

func TestScoreAnswersSevereScenario(t *testing.T) {
	// cycle 8×4, hair 8×4, acne 8×3, weight 7×2, fatigue 6×1
	scores, err := ScoreAnswers(severeAnswers())
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if scores.CA != 32 {
		t.Errorf("CA = %d, want 32", scores.CA)
	}
	if scores.HYPRA != 56 {
		t.Errorf("HYPRA = %d, want 56", scores.HYPRA)
	}
	if scores.PCOMIR != 20 {
		t.Errorf("PCOMIR = %d, want 20", scores.PCOMIR)
	}
	if d := Classify(scores); d.Code != "HCA-PCO" {
		t.Errorf("Classify = %s, want HCA-PCO", d.Code)
	}
}

func TestScoreAnswersMildScenario(t *testing.T) {
	scores, err := ScoreAnswers(mildAnswers())
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if scores.CA >= thresholdCA || scores.HYPRA >= thresholdHYPRA || scores.PCOMIR >= thresholdPCOMIR {
		t.Fatalf("mild answers crossed a threshold: %+v", scores)
	}
	if d := Classify(scores); d.Code != "NONE" {
		t.Errorf("Classify = %s, want NONE", d.Code)
	}
	recs, err := Recommend(mildAnswers())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("mild answers produced %d recommendations, want 0", len(recs))
	}
}

func TestRecommendIndependentOfClassify(t *testing.T) {
	// Only the weight question is severe: PCOMIR = 7×2 = 14 ≥ 10, but no
	// pair of clusters crosses its threshold, so the diagnosis stays baseline
	// while the metabolic tip is still emitted.
	answers := []int{1, 0, 0, 3, 0}
	scores, err := ScoreAnswers(answers)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if scores.PCOMIR < thresholdPCOMIR {
		t.Fatalf("PCOMIR = %d, want >= %d", scores.PCOMIR, thresholdPCOMIR)
	}
	if d := Classify(scores); d.Code != "NONE" {
		t.Errorf("Classify = %s, want NONE", d.Code)
	}
	recs, err := Recommend(answers)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want exactly the metabolic one", len(recs))
	}
	if recs[0] != Questions[3].Recommendation {
		t.Errorf("unexpected recommendation: %q", recs[0])
	}
}

func TestClassifyBoundaryMatchesFullPattern(t *testing.T) {
	// 阈值边界用 ≥ 而不是 >
	d := Classify(ClusterScores{CA: 20, HYPRA: 20, PCOMIR: 10})
	if d.Code != "HCA-PCO" {
		t.Errorf("Classify(20,20,10) = %s, want HCA-PCO", d.Code)
	}
}

func TestClassifyCascadeOrder(t *testing.T) {
	cases := []struct {
		name   string
		scores ClusterScores
		want   string
	}{
		{"full pattern", ClusterScores{CA: 25, HYPRA: 25, PCOMIR: 15}, "HCA-PCO"},
		{"cycle+androgen", ClusterScores{CA: 25, HYPRA: 25, PCOMIR: 5}, "H-CA"},
		{"androgen+metabolic", ClusterScores{CA: 5, HYPRA: 25, PCOMIR: 15}, "H-PCO"},
		{"cycle+metabolic", ClusterScores{CA: 25, HYPRA: 5, PCOMIR: 15}, "PCO-CA"},
		{"cycle alone stays baseline", ClusterScores{CA: 32, HYPRA: 5, PCOMIR: 5}, "NONE"},
		{"androgen alone stays baseline", ClusterScores{CA: 5, HYPRA: 56, PCOMIR: 5}, "NONE"},
		{"metabolic alone stays baseline", ClusterScores{CA: 5, HYPRA: 5, PCOMIR: 20}, "NONE"},
		{"all below", ClusterScores{CA: 4, HYPRA: 7, PCOMIR: 3}, "NONE"},
	}
	for _, tc := range cases {
		if d := Classify(tc.scores); d.Code != tc.want {
			t.Errorf("%s: Classify = %s, want %s", tc.name, d.Code, tc.want)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	s := ClusterScores{CA: 21, HYPRA: 19, PCOMIR: 11}
	first := Classify(s)
	second := Classify(s)
	if first != second {
		t.Errorf("Classify not idempotent: %+v vs %+v", first, second)
	}
}

func TestScoreAnswersMonotonic(t *testing.T) {
	// Raising one answer's severity must never decrease its cluster score.
	for qi := range Questions {
		for lower := 0; lower < len(Questions[qi].Options)-1; lower++ {
			a := mildAnswers()
			a[qi] = lower
			base, err := ScoreAnswers(a)
			if err != nil {
				t.Fatalf("ScoreAnswers: %v", err)
			}
			a[qi] = lower + 1
			raised, err := ScoreAnswers(a)
			if err != nil {
				t.Fatalf("ScoreAnswers: %v", err)
			}
			if clusterValue(raised, Questions[qi].Cluster) < clusterValue(base, Questions[qi].Cluster) {
				t.Errorf("question %d: raising option %d→%d decreased cluster %s", qi, lower, lower+1, Questions[qi].Cluster)
			}
		}
	}
}

func TestScoreAnswersBounds(t *testing.T) {
	maxPerCluster := map[Cluster]int{}
	for _, q := range Questions {
		top := 0
		for _, o := range q.Options {
			if o.Weight > top {
				top = o.Weight
			}
		}
		maxPerCluster[q.Cluster] += top * q.Multiplier
	}

	// 穷举全部 4^5 组合
	var answers [QuestionCount]int
	var walk func(i int)
	walk = func(i int) {
		if i == QuestionCount {
			scores, err := ScoreAnswers(answers[:])
			if err != nil {
				t.Fatalf("ScoreAnswers(%v): %v", answers, err)
			}
			if scores.CA < 0 || scores.HYPRA < 0 || scores.PCOMIR < 0 {
				t.Fatalf("negative cluster score for %v: %+v", answers, scores)
			}
			if scores.CA > maxPerCluster[ClusterCA] ||
				scores.HYPRA > maxPerCluster[ClusterHYPRA] ||
				scores.PCOMIR > maxPerCluster[ClusterPCOMIR] {
				t.Fatalf("cluster score above bound for %v: %+v", answers, scores)
			}
			return
		}
		for o := 0; o < len(Questions[i].Options); o++ {
			answers[i] = o
			walk(i + 1)
		}
	}
	walk(0)
}

func TestScoreAnswersIncomplete(t *testing.T) {
	for _, answers := range [][]int{nil, {}, {1, 2}, {0, 0, 0, 0, 0, 0}} {
		if _, err := ScoreAnswers(answers); !errors.Is(err, ErrIncompleteAnswers) {
			t.Errorf("ScoreAnswers(%v) err = %v, want ErrIncompleteAnswers", answers, err)
		}
	}
	if _, err := Recommend([]int{0}); !errors.Is(err, ErrIncompleteAnswers) {
		t.Errorf("Recommend err = %v, want ErrIncompleteAnswers", err)
	}
}

func TestScoreAnswersUnknownOption(t *testing.T) {
	answers := []int{0, 0, 4, 0, 0}
	_, err := ScoreAnswers(answers)
	var unknown *UnknownOptionError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want *UnknownOptionError", err)
	}
	if unknown.QuestionIndex != 2 {
		t.Errorf("QuestionIndex = %d, want 2", unknown.QuestionIndex)
	}

	if _, err := ScoreAnswers([]int{-1, 0, 0, 0, 0}); !errors.As(err, &unknown) {
		t.Fatalf("negative index err = %v, want *UnknownOptionError", err)
	}
	if unknown.QuestionIndex != 0 {
		t.Errorf("QuestionIndex = %d, want 0", unknown.QuestionIndex)
	}
}

func TestEvaluate(t *testing.T) {
	scores, diagnosis, recs, err := Evaluate(severeAnswers())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if scores.Total() != 108 {
		t.Errorf("Total = %d, want 108", scores.Total())
	}
	if diagnosis.Code != "HCA-PCO" {
		t.Errorf("diagnosis = %s, want HCA-PCO", diagnosis.Code)
	}
	if len(recs) != QuestionCount {
		t.Errorf("got %d recommendations, want %d (every answer severe)", len(recs), QuestionCount)
	}

	if _, _, _, err := Evaluate([]int{9, 9, 9, 9, 9}); err == nil {
		t.Error("Evaluate accepted out-of-range options")
	}
}

func TestOptionText(t *testing.T) {
	if got := OptionText(0, 3); got != "Rarely got period (< 6 times a year)" {
		t.Errorf("OptionText(0,3) = %q", got)
	}
	if got := OptionText(7, 0); got != "" {
		t.Errorf("OptionText(7,0) = %q, want empty", got)
	}
	if got := OptionText(0, 9); got != "" {
		t.Errorf("OptionText(0,9) = %q, want empty", got)
	}
}

func TestQuestionTableShape(t *testing.T) {
	if len(Questions) != QuestionCount {
		t.Fatalf("question table has %d entries, want %d", len(Questions), QuestionCount)
	}
	clusterCounts := map[Cluster]int{}
	for i, q := range Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		clusterCounts[q.Cluster]++
		for j := 1; j < len(q.Options); j++ {
			if q.Options[j].Weight <= q.Options[j-1].Weight {
				t.Errorf("question %d options not strictly increasing in severity", i)
			}
		}
	}
	if clusterCounts[ClusterCA] != 1 || clusterCounts[ClusterHYPRA] != 2 || clusterCounts[ClusterPCOMIR] != 2 {
		t.Errorf("cluster assignment counts = %v, want CA:1 HYPRA:2 PCOMIR:2", clusterCounts)
	}
}

func clusterValue(s ClusterScores, c Cluster) int {
	switch c {
	case ClusterCA:
		return s.CA
	case ClusterHYPRA:
		return s.HYPRA
	default:
		return s.PCOMIR
	}
}
