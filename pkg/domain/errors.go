package domain

import "errors"

// 呼び出し側が errors.Is で判別できる公開エラーです。
var (
	ErrConceptGeneration = errors.New("concept generation failed")
	ErrPlanGeneration    = errors.New("plan generation failed")
	ErrImageGeneration   = errors.New("image generation failed")
	ErrNoImageData       = errors.New("no image data received from API")
	ErrEditFailed        = errors.New("image edit failed")
	ErrMissingAPIKey     = errors.New("GEMINI_API_KEY is required")

	ErrInvalidIndex    = errors.New("index out of range")
	ErrItemLocked      = errors.New("plan item is locked once generation has started")
	ErrStepOrder       = errors.New("operation not allowed in the current step")
	ErrInvalidPlanEdit = errors.New("invalid plan item edit")
)
