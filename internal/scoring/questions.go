package scoring

// Cluster 症状聚类标签
type Cluster string

const (
	ClusterCA     Cluster = "CA"     // 月经周期/无排卵相关
	ClusterHYPRA  Cluster = "HYPRA"  // 高雄激素相关（毛发、痤疮）
	ClusterPCOMIR Cluster = "PCOMIR" // 代谢/胰岛素抵抗相关（体重、餐后疲劳）
)

// Option is a single selectable answer with its severity weight.
type Option struct {
	Text   string `json:"text"`
	Weight int    `json:"-"`
}

// Question is one entry of the canonical screening questionnaire.
// Weight × Multiplier accumulates into the question's cluster. TriggerWeight
// is the minimum selected weight that emits the question's recommendation.
type Question struct {
	Prompt         string
	Options        []Option
	Multiplier     int
	Cluster        Cluster
	TriggerWeight  int
	Recommendation string
}

// Questions is the canonical question/weight/multiplier table. Weights,
// multipliers and the Classify thresholds form one consistent scale; changing
// any of them requires revisiting the others.
var Questions = []Question{
	{
		Prompt: "How regular was your menstrual cycle in the past year?",
		Options: []Option{
			{Text: "Does not apply (e.g., hormonal treatment or pregnancy)", Weight: 0},
			{Text: "Regular (25–35 days)", Weight: 1},
			{Text: "Often irregular (< 25 or > 35 days)", Weight: 6},
			{Text: "Rarely got period (< 6 times a year)", Weight: 8},
		},
		Multiplier:     4,
		Cluster:        ClusterCA,
		TriggerWeight:  6,
		Recommendation: "Irregular or missing cycles can signal ovulation issues. Tracking your cycle consistently helps spot the pattern early.",
	},
	{
		Prompt: "Do you notice excessive thick black hair on your face, chest, or back?",
		Options: []Option{
			{Text: "No, not at all", Weight: 1},
			{Text: "Yes, manageable with hair removal", Weight: 5},
			{Text: "Yes, resistant to hair removal", Weight: 7},
			{Text: "Yes + scalp thinning or hair loss", Weight: 8},
		},
		Multiplier:     4,
		Cluster:        ClusterHYPRA,
		TriggerWeight:  5,
		Recommendation: "Persistent unwanted hair growth is often androgen-driven. A hormone panel with a clinician can clarify the cause.",
	},
	{
		Prompt: "Have you had acne or oily skin this year?",
		Options: []Option{
			{Text: "No", Weight: 1},
			{Text: "Yes, mild but manageable", Weight: 4},
			{Text: "Yes, often despite treatment", Weight: 6},
			{Text: "Yes, severe and persistent", Weight: 8},
		},
		Multiplier:     3,
		Cluster:        ClusterHYPRA,
		TriggerWeight:  6,
		Recommendation: "Treatment-resistant acne can have a hormonal component. Consider discussing androgen testing with a dermatologist.",
	},
	{
		Prompt: "Have you experienced weight changes?",
		Options: []Option{
			{Text: "No, stable weight", Weight: 1},
			{Text: "Stable only with effort", Weight: 2},
			{Text: "Struggling to maintain weight", Weight: 5},
			{Text: "Can't lose weight despite diet/exercise", Weight: 7},
		},
		Multiplier:     2,
		Cluster:        ClusterPCOMIR,
		TriggerWeight:  5,
		Recommendation: "Weight that resists diet and exercise may point to insulin resistance. Strength training and balanced meals help stabilize it.",
	},
	{
		Prompt: "Do you feel tired or sleepy after meals?",
		Options: []Option{
			{Text: "No, not really", Weight: 1},
			{Text: "Sometimes after heavy meals", Weight: 2},
			{Text: "Yes, often regardless of food", Weight: 4},
			{Text: "Yes, almost daily with alertness issues", Weight: 6},
		},
		Multiplier:     1,
		Cluster:        ClusterPCOMIR,
		TriggerWeight:  4,
		Recommendation: "Regular post-meal fatigue can reflect blood-sugar swings. Pairing carbs with protein and fiber softens the crash.",
	},
}

// QuestionCount 问卷固定长度
const QuestionCount = 5

// OptionText returns the display text of an option, or "" when out of range.
func OptionText(questionIndex, optionIndex int) string {
	if questionIndex < 0 || questionIndex >= len(Questions) {
		return ""
	}
	opts := Questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		return ""
	}
	return opts[optionIndex].Text
}
