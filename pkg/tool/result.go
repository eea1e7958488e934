package tool

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is the envelope returned for every tool call, success or failure
type Result struct {
	Content []*Content `json:"content"`
	Error   bool       `json:"isError"`
}

// Content is a single block of a result. Only text is produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ContentTypeText = "text"
	errorPrefix     = "Error: "
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTextResult returns a successful result with one text block
func NewTextResult(text string) *Result {
	return &Result{
		Content: []*Content{{Type: ContentTypeText, Text: text}},
	}
}

// NewErrorResult returns an error result with the error message
func NewErrorResult(err error) *Result {
	return &Result{
		Content: []*Content{{Type: ContentTypeText, Text: errorPrefix + err.Error()}},
		Error:   true,
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Result) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the text of all content blocks
func (r *Result) Text() string {
	var text string
	for _, c := range r.Content {
		if c.Type == ContentTypeText {
			text += c.Text
		}
	}
	return text
}
