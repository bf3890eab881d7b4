package service

import (
	"context"
	"encoding/json"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/repository"
	"inbalance_quiz_backend/internal/scoring"
	"inbalance_quiz_backend/internal/util"
	"inbalance_quiz_backend/pkg/logger"
	"inbalance_quiz_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

type QuizService struct {
	Questions *repository.QuestionRepository
	Responses *repository.ResponseRepository
	Sessions  *repository.SessionRepository
	Sheet     *SheetService
}

func NewQuizService(
	questions *repository.QuestionRepository,
	responses *repository.ResponseRepository,
	sessions *repository.SessionRepository,
	sheet *SheetService,
) *QuizService {
	return &QuizService{
		Questions: questions,
		Responses: responses,
		Sessions:  sessions,
		Sheet:     sheet,
	}
}

// QuestionView 前端展示用题目（不含权重）
type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

func (s *QuizService) ListQuestions() ([]QuestionView, error) {
	rows, err := s.Questions.ListAll()
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(rows))
	for i, q := range rows {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return nil, err
		}
		views[i] = QuestionView{
			Index:   q.Order,
			Prompt:  q.Prompt,
			Options: options,
		}
	}
	return views, nil
}

type StartQuizRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

// StartSession validates the intake form and opens a redis-backed session.
func (s *QuizService) StartSession(ctx context.Context, req StartQuizRequest) (*model.QuizSession, error) {
	firstName := util.NormalizeName(req.FirstName)
	if firstName == "" {
		return nil, util.ErrNameRequired
	}
	if !util.IsValidEmail(req.Email) {
		return nil, util.ErrInvalidEmail
	}

	session := &model.QuizSession{
		ID:        model.GenerateUUID(),
		FirstName: firstName,
		LastName:  util.NormalizeName(req.LastName),
		Email:     util.NormalizeName(req.Email),
		Phone:     util.NormalizeName(req.Phone),
		Country:   util.NormalizeName(req.Country),
		Answers:   []int{},
		CreatedAt: time.Now(),
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

type AnswerRequest struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

// QuizProgress reports where the session stands after a navigation step.
type QuizProgress struct {
	SessionID     string `json:"sessionId"`
	Answered      int    `json:"answered"`
	QuestionCount int    `json:"questionCount"`
	Complete      bool   `json:"complete"`
}

// SubmitAnswer validates the option against the canonical table before it is
// recorded; a stale option set fails loudly here instead of at scoring time.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, req AnswerRequest) (*QuizProgress, error) {
	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if scoring.OptionText(req.QuestionIndex, req.OptionIndex) == "" {
		return nil, &scoring.UnknownOptionError{QuestionIndex: req.QuestionIndex, OptionIndex: req.OptionIndex}
	}

	if err := session.PushAnswer(req.QuestionIndex, req.OptionIndex, scoring.QuestionCount); err != nil {
		return nil, err
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.progress(session), nil
}

// Back pops the last answer so the previous question can be answered again.
func (s *QuizService) Back(ctx context.Context, sessionID string) (*QuizProgress, error) {
	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.PopAnswer(); err != nil {
		return nil, err
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.progress(session), nil
}

func (s *QuizService) progress(session *model.QuizSession) *QuizProgress {
	return &QuizProgress{
		SessionID:     session.ID,
		Answered:      len(session.Answers),
		QuestionCount: scoring.QuestionCount,
		Complete:      session.Complete(scoring.QuestionCount),
	}
}

// QuizResultResponse is returned once per completed session.
type QuizResultResponse struct {
	ResponseID      string                `json:"responseId"`
	Diagnosis       scoring.Diagnosis     `json:"diagnosis"`
	Recommendations []string              `json:"recommendations"`
	Scores          scoring.ClusterScores `json:"scores"`
	TotalScore      int                   `json:"totalScore"`
}

// CompleteSession scores the answer list, persists the response row and
// kicks off the spreadsheet append. The append is fire-and-forget: the quiz
// result never waits on or fails with the external sink.
func (s *QuizService) CompleteSession(ctx context.Context, sessionID string) (*QuizResultResponse, error) {
	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Complete(scoring.QuestionCount) {
		return nil, util.ErrSessionIncomplete
	}

	scores, diagnosis, recommendations, err := scoring.Evaluate(session.Answers)
	if err != nil {
		return nil, err
	}

	answerTexts := make([]string, len(session.Answers))
	for i, optionIndex := range session.Answers {
		answerTexts[i] = scoring.OptionText(i, optionIndex)
	}

	answersJSON, _ := json.Marshal(session.Answers)
	textsJSON, _ := json.Marshal(answerTexts)
	recsJSON, _ := json.Marshal(recommendations)

	response := &model.QuizResponse{
		FirstName:       session.FirstName,
		LastName:        session.LastName,
		Email:           session.Email,
		Phone:           session.Phone,
		Country:         session.Country,
		Answers:         answersJSON,
		AnswerTexts:     textsJSON,
		ScoreCA:         scores.CA,
		ScoreHYPRA:      scores.HYPRA,
		ScorePCOMIR:     scores.PCOMIR,
		TotalScore:      scores.Total(),
		DiagnosisCode:   diagnosis.Code,
		DiagnosisLabel:  diagnosis.Label,
		Recommendations: recsJSON,
	}

	if err := s.Responses.Create(response); err != nil {
		return nil, err
	}

	monitoring.QuizCompletions.WithLabelValues(diagnosis.Code).Inc()

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		logger.Log.Warn("failed to delete completed session", zap.String("session", sessionID), zap.Error(err))
	}

	go s.syncResponse(response.ID)

	return &QuizResultResponse{
		ResponseID:      response.ID,
		Diagnosis:       diagnosis,
		Recommendations: recommendations,
		Scores:          scores,
		TotalScore:      scores.Total(),
	}, nil
}

type WaitlistRequest struct {
	Tracking string   `json:"tracking"`
	Symptoms []string `json:"symptoms"`
	Goal     string   `json:"goal"`
	Notes    string   `json:"notes"`
}

// JoinWaitlist records the opt-in sub-answers on an existing response row and
// schedules a fresh spreadsheet append with the enriched row.
func (s *QuizService) JoinWaitlist(responseID string, req WaitlistRequest) (*model.QuizResponse, error) {
	response, err := s.Responses.FindByID(responseID)
	if err != nil {
		return nil, util.ErrResponseNotFound
	}
	if response.WaitlistOptIn {
		return nil, util.ErrAlreadyOnWaitlist
	}

	symptomsJSON, _ := json.Marshal(req.Symptoms)

	response.WaitlistOptIn = true
	response.Tracking = req.Tracking
	response.Symptoms = symptomsJSON
	response.Goal = req.Goal
	response.Notes = req.Notes
	response.SheetSyncedAt = nil

	if err := s.Responses.Update(response); err != nil {
		return nil, err
	}

	go s.syncResponse(response.ID)

	return response, nil
}

// syncResponse pushes one row to the sheet webhook and marks it synced.
// Errors only log and count; the retry ticker picks the row up again.
func (s *QuizService) syncResponse(responseID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Sheet.Timeout())
	defer cancel()

	response, err := s.Responses.FindByID(responseID)
	if err != nil {
		logger.Log.Error("sheet sync: response lookup failed", zap.String("response", responseID), zap.Error(err))
		return
	}

	if err := s.Sheet.Append(ctx, response); err != nil {
		monitoring.SheetSyncFailures.Inc()
		logger.Log.Warn("sheet append failed, will retry", zap.String("response", responseID), zap.Error(err))
		return
	}

	if err := s.Responses.MarkSynced(responseID, time.Now()); err != nil {
		logger.Log.Error("failed to mark response synced", zap.String("response", responseID), zap.Error(err))
	}
}

// SyncPendingResponses 后台补偿任务：重试所有未同步的行
func (s *QuizService) SyncPendingResponses() error {
	pending, err := s.Responses.ListUnsynced(50)
	if err != nil {
		return err
	}

	var firstErr error
	for _, response := range pending {
		ctx, cancel := context.WithTimeout(context.Background(), s.Sheet.Timeout())
		err := s.Sheet.Append(ctx, &response)
		cancel()

		if err != nil {
			monitoring.SheetSyncFailures.Inc()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := s.Responses.MarkSynced(response.ID, time.Now()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResyncResponse 管理端强制重新追加某一行
func (s *QuizService) ResyncResponse(responseID string) error {
	if _, err := s.Responses.FindByID(responseID); err != nil {
		return util.ErrResponseNotFound
	}
	if err := s.Responses.MarkUnsynced(responseID); err != nil {
		return err
	}
	go s.syncResponse(responseID)
	return nil
}
