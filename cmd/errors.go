package cmd

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/todos/internal/client"
	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/todo"
)

// cmdError returns an error in the appropriate format for the output mode.
func cmdError(jsonMode bool, code string, format string, args ...any) error {
	if jsonMode {
		return output.Error(code, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf(format, args...)
}

// apiError reports a failed API call. Messages from the server are shown verbatim.
func apiError(jsonMode bool, err error) error {
	code := errorCode(err)
	if jsonMode {
		return output.Error(code, client.Message(err))
	}
	if code == output.ErrConnection {
		return fmt.Errorf("%w (is 'todos serve' running at %s?)", err, api.Endpoint())
	}
	return errors.New(client.Message(err))
}

// errorCode maps an API error to an envelope code.
func errorCode(err error) string {
	var list gqlerror.List
	if !errors.As(err, &list) {
		return output.ErrConnection
	}
	switch client.Message(err) {
	case todo.MsgNotFound, todo.MsgCompleteNotFound, todo.MsgDeleteNotFound:
		return output.ErrNotFound
	case todo.MsgInvalidTitle, todo.MsgInvalidQuery:
		return output.ErrValidation
	default:
		return output.ErrServer
	}
}
