// Package suggest turns free-text product descriptions into furniture parameters
// through a text generation model. Model output is parsed strictly; anything that
// does not match the expected shape is reported as a ValidationError and the
// caller keeps its previous parameters.
package suggest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// SuggestedHardware is one fitting proposed by the model. It carries no price.
type SuggestedHardware struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Dimensions are in millimetres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FurnitureSuggestion is the validated model output.
type FurnitureSuggestion struct {
	ProductName string              `json:"productName"`
	Material    string              `json:"material"`
	Finish      string              `json:"finish"`
	Dimensions  Dimensions          `json:"dimensions"`
	Hardware    []SuggestedHardware `json:"hardware"`
}

// ValidationError reports model output that is not a usable suggestion.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid suggestion: %s: %v", e.Reason, e.Err)
	}
	return "invalid suggestion: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// StripFence removes a surrounding ``` or ```json code fence, if any.
func StripFence(text string) string {
	s := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(s); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return s
}

type wireHardware struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
}

type wireDimensions struct {
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type wireSuggestion struct {
	ProductName *string         `json:"productName"`
	Material    *string         `json:"material"`
	Finish      *string         `json:"finish"`
	Dimensions  *wireDimensions `json:"dimensions"`
	Hardware    []wireHardware  `json:"hardware"`
}

// Parse decodes model output into a FurnitureSuggestion. Unknown fields, trailing
// data, missing fields and negative sizes or quantities are rejected.
func Parse(text string) (FurnitureSuggestion, error) {
	body := StripFence(text)
	if body == "" {
		return FurnitureSuggestion{}, &ValidationError{Reason: "empty response"}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()

	var w wireSuggestion
	if err := dec.Decode(&w); err != nil {
		return FurnitureSuggestion{}, &ValidationError{Reason: "decode json", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return FurnitureSuggestion{}, &ValidationError{Reason: "trailing data after json object"}
	}

	return w.validate()
}

func (w wireSuggestion) validate() (FurnitureSuggestion, error) {
	invalid := func(format string, args ...any) (FurnitureSuggestion, error) {
		return FurnitureSuggestion{}, &ValidationError{Reason: fmt.Sprintf(format, args...)}
	}

	switch {
	case w.ProductName == nil:
		return invalid("missing productName")
	case w.Material == nil:
		return invalid("missing material")
	case w.Finish == nil:
		return invalid("missing finish")
	case w.Dimensions == nil:
		return invalid("missing dimensions")
	}

	dims := map[string]*float64{
		"length": w.Dimensions.Length,
		"width":  w.Dimensions.Width,
		"height": w.Dimensions.Height,
	}
	for _, k := range []string{"length", "width", "height"} {
		v := dims[k]
		if v == nil {
			return invalid("missing dimensions.%s", k)
		}
		if *v < 0 {
			return invalid("dimensions.%s must be >= 0", k)
		}
	}

	s := FurnitureSuggestion{
		ProductName: *w.ProductName,
		Material:    *w.Material,
		Finish:      *w.Finish,
		Dimensions: Dimensions{
			Length: *w.Dimensions.Length,
			Width:  *w.Dimensions.Width,
			Height: *w.Dimensions.Height,
		},
		Hardware: make([]SuggestedHardware, 0, len(w.Hardware)),
	}

	for i, h := range w.Hardware {
		if h.Name == nil || strings.TrimSpace(*h.Name) == "" {
			return invalid("hardware[%d]: missing name", i)
		}
		if h.Quantity == nil {
			return invalid("hardware[%d] %q: missing quantity", i, *h.Name)
		}
		if *h.Quantity < 0 {
			return invalid("hardware[%d] %q: quantity must be >= 0", i, *h.Name)
		}
		s.Hardware = append(s.Hardware, SuggestedHardware{Name: *h.Name, Quantity: *h.Quantity})
	}

	return s, nil
}
