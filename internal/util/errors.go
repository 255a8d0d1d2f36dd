package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingLessonID    = errors.New("lessonId is required")
	ErrMissingEventType   = errors.New("eventType is required")
	ErrUnknownEventType   = errors.New("unknown event type")
)
