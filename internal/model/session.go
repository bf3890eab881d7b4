package model

import (
	"errors"
	"time"
)

var (
	// ErrNoAnswersToPop back 操作在空答案列表上无效
	ErrNoAnswersToPop = errors.New("no answers to pop")
	// ErrQuestionOutOfSequence 答案必须按题目顺序逐题提交
	ErrQuestionOutOfSequence = errors.New("answer submitted out of question sequence")
	// ErrSessionAlreadyFull 所有题目均已作答
	ErrSessionAlreadyFull = errors.New("all questions already answered")
)

// QuizSession is the transient per-user quiz state held in redis for the
// duration of one walkthrough. Answers are appended in question order; Back
// pops the last one. The scoring engine receives the answer list explicitly
// and never touches this value.
type QuizSession struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	Answers   []int     `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}

// PushAnswer records the option chosen for questionIndex. The caller submits
// answers strictly in order, so questionIndex must equal the current answer
// count.
func (s *QuizSession) PushAnswer(questionIndex, optionIndex, questionCount int) error {
	if len(s.Answers) >= questionCount {
		return ErrSessionAlreadyFull
	}
	if questionIndex != len(s.Answers) {
		return ErrQuestionOutOfSequence
	}
	s.Answers = append(s.Answers, optionIndex)
	return nil
}

// PopAnswer removes the most recent answer for back navigation.
func (s *QuizSession) PopAnswer() error {
	if len(s.Answers) == 0 {
		return ErrNoAnswersToPop
	}
	s.Answers = s.Answers[:len(s.Answers)-1]
	return nil
}

// Complete reports whether every question has been answered.
func (s *QuizSession) Complete(questionCount int) bool {
	return len(s.Answers) == questionCount
}
