package tool

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	uuid "github.com/google/uuid"
	paprika "github.com/mutablelogic/go-paprika"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Call is a single invocation of a tool. Arguments is nil when the caller
// did not provide an arguments object.
type Call struct {
	Name      string         `json:"name"`
	Id        string         `json:"id,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCall returns a call with a unique identifier
func NewCall(name string, arguments map[string]any) *Call {
	return &Call{
		Name:      name,
		Id:        uuid.NewString(),
		Arguments: arguments,
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c *Call) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Call runs a tool and always returns a result: any error, including a
// panic within the tool, is returned as an error result.
func (tk *Toolkit) Call(ctx context.Context, call *Call) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = NewErrorResult(paprika.ErrInternalServerError.With(fmt.Sprint(r)))
		}
	}()

	switch {
	case call == nil:
		return NewErrorResult(paprika.ErrBadParameter.With("missing call"))
	case call.Arguments == nil:
		return NewErrorResult(paprika.ErrBadParameter.With("Arguments are required"))
	}

	text, err := tk.Run(ctx, call.Name, call.Arguments)
	if err != nil {
		return NewErrorResult(err)
	}
	return NewTextResult(text)
}
