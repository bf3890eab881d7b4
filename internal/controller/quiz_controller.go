package controller

import (
	"errors"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/scoring"
	"inbalance_quiz_backend/internal/service"
	"inbalance_quiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 获取问卷题目列表
// @Description 按固定顺序返回题目与选项文本（不含评分权重）
// @Tags 问卷
// @Produce json
// @Success 200 {object} util.Response
// @Router /quiz/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.Service.ListQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 开始问卷会话
// @Description 校验联系信息并创建会话
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.StartQuizRequest true "联系信息"
// @Success 201 {object} util.Response
// @Router /quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	var req service.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.StartSession(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrNameRequired) || errors.Is(err, util.ErrInvalidEmail) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId":     session.ID,
		"questionCount": scoring.QuestionCount,
	})
}

// @Summary 提交当前题目的答案
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body service.AnswerRequest true "答案（题目下标+选项下标）"
// @Success 200 {object} util.Response
// @Router /quiz/sessions/{id}/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.SubmitAnswer(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 返回上一题
// @Description 弹出最近一个答案，允许重新作答
// @Tags 问卷
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /quiz/sessions/{id}/back [post]
func (c *QuizController) Back(ctx *gin.Context) {
	progress, err := c.Service.Back(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 完成问卷并获取诊断结果
// @Description 所有题目作答后评分、分类并生成建议
// @Tags 问卷
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /quiz/sessions/{id}/complete [post]
func (c *QuizController) Complete(ctx *gin.Context) {
	result, err := c.Service.CompleteSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 加入候补名单
// @Description 在已完成的响应上记录候补名单附加问题
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "响应ID"
// @Param body body service.WaitlistRequest true "附加信息"
// @Success 200 {object} util.Response
// @Router /quiz/responses/{id}/waitlist [post]
func (c *QuizController) JoinWaitlist(ctx *gin.Context) {
	var req service.WaitlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.Service.JoinWaitlist(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResponseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyOnWaitlist):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"responseId":    response.ID,
		"waitlistOptIn": response.WaitlistOptIn,
	})
}

func (c *QuizController) handleQuizError(ctx *gin.Context, err error) {
	var unknown *scoring.UnknownOptionError
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionIncomplete),
		errors.Is(err, model.ErrQuestionOutOfSequence),
		errors.Is(err, model.ErrSessionAlreadyFull),
		errors.Is(err, model.ErrNoAnswersToPop),
		errors.Is(err, scoring.ErrIncompleteAnswers):
		util.BadRequest(ctx, err.Error())
	case errors.As(err, &unknown):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
