package model

import "fmt"

// PostAction is what to do with a finished download
type PostAction int

const (
	PostActionOpenFolder PostAction = iota + 1
	PostActionOpenFile
	PostActionNothing
)

// PostActions lists the actions in menu order
var PostActions = []PostAction{
	PostActionOpenFolder,
	PostActionOpenFile,
	PostActionNothing,
}

// ParsePostAction converts menu input into a PostAction
func ParsePostAction(input string) (PostAction, error) {
	n, err := parseMenuNumber("parse action", input)
	if err != nil {
		return 0, err
	}
	action := PostAction(n)
	if !action.Valid() {
		return 0, NewValidationError("parse action", fmt.Sprintf("out of range: %d", n), nil)
	}
	return action, nil
}

// Valid reports whether the value is a known action
func (pa PostAction) Valid() bool {
	return pa >= PostActionOpenFolder && pa <= PostActionNothing
}

// Label returns the menu text of the action
func (pa PostAction) Label() string {
	switch pa {
	case PostActionOpenFolder:
		return "Open folder"
	case PostActionOpenFile:
		return "Open file"
	case PostActionNothing:
		return "Do nothing"
	}
	return "Unknown"
}

// Icon returns the menu icon of the action
func (pa PostAction) Icon() string {
	switch pa {
	case PostActionOpenFolder:
		return "📁"
	case PostActionOpenFile:
		return "📄"
	}
	return "×"
}
