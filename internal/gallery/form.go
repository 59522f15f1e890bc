package gallery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"imagestudio/internal/domain"
)

// MaxPromptLength is the prompt limit shown by the counter under the text box.
const MaxPromptLength = 1000

// ImageType is the style tab selected on the prompt form.
type ImageType string

const (
	ImageTypeCustom    ImageType = "Custom"
	ImageTypePortrait  ImageType = "Portrait"
	ImageTypeLandscape ImageType = "Landscape"
	ImageTypeAbstract  ImageType = "Abstract"
)

var imageTypes = []ImageType{ImageTypeCustom, ImageTypePortrait, ImageTypeLandscape, ImageTypeAbstract}

// AspectChoice is the coarse output shape offered on the prompt form.
type AspectChoice string

const (
	AspectSquare    AspectChoice = "Square"
	AspectLandscape AspectChoice = "Landscape"
	AspectPortrait  AspectChoice = "Portrait"
)

var aspectChoices = []AspectChoice{AspectSquare, AspectLandscape, AspectPortrait}

// Dimensions returns the pixel size a generated image gets for the choice.
func (a AspectChoice) Dimensions() domain.Dimensions {
	switch a {
	case AspectLandscape:
		return domain.Dimensions{Width: 1024, Height: 576}
	case AspectPortrait:
		return domain.Dimensions{Width: 576, Height: 1024}
	default:
		return domain.Dimensions{Width: 1024, Height: 1024}
	}
}

// GenerationForm is the prompt-entry form.
type GenerationForm struct {
	ImageType   ImageType    `json:"image_type"`
	Prompt      string       `json:"prompt"`
	AspectRatio AspectChoice `json:"aspect_ratio"`
}

// FormDefaults lists the form's initial values and options; a reset returns
// the form to these values.
type FormDefaults struct {
	Form            GenerationForm `json:"form"`
	ImageTypes      []ImageType    `json:"image_types"`
	AspectChoices   []AspectChoice `json:"aspect_choices"`
	MaxPromptLength int            `json:"max_prompt_length"`
}

func DefaultForm() GenerationForm {
	return GenerationForm{ImageType: ImageTypeCustom, AspectRatio: AspectSquare}
}

func Defaults() FormDefaults {
	return FormDefaults{
		Form:            DefaultForm(),
		ImageTypes:      append([]ImageType(nil), imageTypes...),
		AspectChoices:   append([]AspectChoice(nil), aspectChoices...),
		MaxPromptLength: MaxPromptLength,
	}
}

// NormalizePrompt converts the prompt to NFC and trims surrounding space.
func NormalizePrompt(prompt string) string {
	return strings.TrimSpace(norm.NFC.String(prompt))
}

// Validate normalizes the form, fills in defaults for empty selectors and
// rejects unknown options or an empty or oversized prompt.
func (f GenerationForm) Validate() (GenerationForm, error) {
	f.Prompt = NormalizePrompt(f.Prompt)
	if f.Prompt == "" {
		return f, fmt.Errorf("%w: prompt is empty", domain.ErrInvalidPrompt)
	}
	if n := utf8.RuneCountInString(f.Prompt); n > MaxPromptLength {
		return f, fmt.Errorf("%w: %d characters exceeds %d", domain.ErrInvalidPrompt, n, MaxPromptLength)
	}

	if f.ImageType == "" {
		f.ImageType = ImageTypeCustom
	}
	if !containsFold(imageTypes, f.ImageType) {
		return f, fmt.Errorf("%w: %q", domain.ErrUnsupportedImageType, f.ImageType)
	}
	f.ImageType = canonical(imageTypes, f.ImageType)

	if f.AspectRatio == "" {
		f.AspectRatio = AspectSquare
	}
	if !containsFold(aspectChoices, f.AspectRatio) {
		return f, fmt.Errorf("%w: %q", domain.ErrUnknownAspectRatio, f.AspectRatio)
	}
	f.AspectRatio = canonical(aspectChoices, f.AspectRatio)
	return f, nil
}

func containsFold[T ~string](options []T, v T) bool {
	for _, o := range options {
		if strings.EqualFold(string(o), strings.TrimSpace(string(v))) {
			return true
		}
	}
	return false
}

func canonical[T ~string](options []T, v T) T {
	for _, o := range options {
		if strings.EqualFold(string(o), strings.TrimSpace(string(v))) {
			return o
		}
	}
	return v
}
