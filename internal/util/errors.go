package util

import "errors"

var (
	ErrSessionNotFound      = errors.New("quiz session not found or expired")
	ErrSessionIncomplete    = errors.New("quiz session is not complete yet")
	ErrResponseNotFound     = errors.New("quiz response not found")
	ErrAlreadyOnWaitlist    = errors.New("waitlist already joined for this response")
	ErrInvalidEmail         = errors.New("邮箱格式不正确")
	ErrNameRequired         = errors.New("请填写名字")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrStorageNotConfigured = errors.New("storage provider not configured")
)
