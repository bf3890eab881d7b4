package model

import (
	"errors"
	"testing"
)

func TestPushAnswerSequence(t *testing.T) {
	s := &QuizSession{ID: "s1"}

	if err := s.PushAnswer(1, 0, 5); !errors.Is(err, ErrQuestionOutOfSequence) {
		t.Fatalf("out-of-sequence push err = %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := s.PushAnswer(i, 2, 5); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if !s.Complete(5) {
		t.Fatal("session should be complete after 5 answers")
	}
	if err := s.PushAnswer(5, 0, 5); !errors.Is(err, ErrSessionAlreadyFull) {
		t.Fatalf("push past end err = %v", err)
	}
}

func TestPopAnswer(t *testing.T) {
	s := &QuizSession{}
	if err := s.PopAnswer(); !errors.Is(err, ErrNoAnswersToPop) {
		t.Fatalf("pop on empty err = %v", err)
	}

	_ = s.PushAnswer(0, 3, 5)
	_ = s.PushAnswer(1, 1, 5)
	if err := s.PopAnswer(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(s.Answers) != 1 || s.Answers[0] != 3 {
		t.Fatalf("answers after pop = %v, want [3]", s.Answers)
	}

	// resubmit for the popped question
	if err := s.PushAnswer(1, 2, 5); err != nil {
		t.Fatalf("re-push: %v", err)
	}
	if s.Answers[1] != 2 {
		t.Fatalf("answers = %v, want second answer 2", s.Answers)
	}
}

func TestCompleteRequiresExactCount(t *testing.T) {
	s := &QuizSession{Answers: []int{0, 1, 2}}
	if s.Complete(5) {
		t.Fatal("3 answers must not count as complete")
	}
}
