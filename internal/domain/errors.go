package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidPrompt        = errors.New("invalid prompt")
	ErrPromptRequired       = errors.New("prompt required")
	ErrNoPrompt             = errors.New("image has no prompt")
	ErrUnknownAspectRatio   = errors.New("unknown aspect ratio")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrOriginalResolved     = errors.New("original dimensions already resolved")
	ErrMaskEmpty            = errors.New("mask is empty")
	ErrPanelClosed          = errors.New("panel is not open")
	ErrImagePending         = errors.New("image is still generating")
	ErrInvalidPointerEvent  = errors.New("invalid pointer event")
)
