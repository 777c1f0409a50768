package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoAction means the reply contained no fenced json block. This is the
	// normal outcome for a conversational reply.
	ErrNoAction = errors.New("no action in reply")

	// ErrBadAction means a json block was present but did not parse into a
	// usable action.
	ErrBadAction = errors.New("malformed action")
)

// Action is a structured command the model can embed in its reply.
type Action struct {
	Name       string            `json:"action"`
	Parameters map[string]string `json:"parameters"`
}

// ExtractAction pulls the first fenced ```json block out of a model reply
// and parses it. Model output is untrusted; every failure mode maps to a
// typed error the caller can branch on.
func ExtractAction(reply string) (*Action, error) {
	block, ok := fencedJSON(reply)
	if !ok {
		return nil, ErrNoAction
	}

	var action Action

	dec := json.NewDecoder(strings.NewReader(block))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&action); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAction, err)
	}

	if action.Name == "" {
		return nil, fmt.Errorf("%w: missing action name", ErrBadAction)
	}

	if action.Parameters == nil {
		action.Parameters = map[string]string{}
	}

	return &action, nil
}

func fencedJSON(reply string) (string, bool) {
	const open = "```json"

	start := strings.Index(reply, open)
	if start < 0 {
		return "", false
	}

	rest := reply[start+len(open):]

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// Param returns a named parameter, with ok reporting presence.
func (a *Action) Param(name string) (string, bool) {
	v, ok := a.Parameters[name]

	return v, ok
}
