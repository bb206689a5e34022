package thunderbird

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-message/mail"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ImportantTag is the reserved tag identifier Thunderbird uses for its
// "Important" tag.
const ImportantTag = "$label1"

// DefaultTagNames maps the built-in tag identifiers to their English names.
var DefaultTagNames = map[string]string{
	ImportantTag: "Important",
	"$label2":    "Work",
	"$label3":    "Personal",
	"$label4":    "Todo",
	"$label5":    "Later",
}

// Action is a closed set of filter actions; the concrete types below are
// its only members.
type Action interface {
	fmt.Stringer
	isAction()
}

type AddTag struct{ Tag string }

type CopyToFolder struct{ Folder Folder }

type MoveToFolder struct{ Folder Folder }

type Delete struct{}

type Forward struct{ Recipient string }

type JunkScore struct{ Score int }

type MarkRead struct{}

type MarkFlagged struct{}

// Reply answers with a stored template; ModelRef is kept opaque.
type Reply struct{ ModelRef string }

type StopExecution struct{}

func (AddTag) isAction()        {}
func (CopyToFolder) isAction()  {}
func (MoveToFolder) isAction()  {}
func (Delete) isAction()        {}
func (Forward) isAction()       {}
func (JunkScore) isAction()     {}
func (MarkRead) isAction()      {}
func (MarkFlagged) isAction()   {}
func (Reply) isAction()         {}
func (StopExecution) isAction() {}

func (a AddTag) String() string       { return fmt.Sprintf("Add tag %q", a.Tag) }
func (a CopyToFolder) String() string { return fmt.Sprintf("Copy to folder %q", a.Folder.String()) }
func (a MoveToFolder) String() string { return fmt.Sprintf("Move to folder %q", a.Folder.String()) }
func (Delete) String() string         { return "Delete" }
func (a Forward) String() string      { return "Send a copy to " + a.Recipient }
func (a JunkScore) String() string    { return fmt.Sprintf("Set junk score to %d", a.Score) }
func (MarkRead) String() string       { return "Mark message as read" }
func (MarkFlagged) String() string    { return "Mark flagged" }
func (a Reply) String() string        { return fmt.Sprintf("Reply using %q", a.ModelRef) }
func (StopExecution) String() string  { return "Stop execution" }

// ───── factory ─────

// actionFactory builds an action from its optional actionValue payload.
type actionFactory func(value string, present bool) (Action, error)

// actionFactories is keyed by the camelized action name.
var actionFactories = map[string]actionFactory{
	"Addtag":        newAddTag,
	"CopyToFolder":  newCopyToFolder,
	"MoveToFolder":  newMoveToFolder,
	"Delete":        noArgument(Delete{}),
	"Forward":       newForward,
	"Junkscore":     newJunkScore,
	"MarkRead":      noArgument(MarkRead{}),
	"MarkFlagged":   noArgument(MarkFlagged{}),
	"Reply":         newReply,
	"StopExecution": noArgument(StopExecution{}),
}

// NewAction builds the action called name ("Move to folder", "AddTag", ...)
// from its payload. present is false when no actionValue line followed.
func NewAction(name, value string, present bool) (Action, error) {
	factory, ok := actionFactories[camelize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, name)
	}
	return factory(value, present)
}

// camelize turns "Move to folder" into "MoveToFolder" and "JunkScore"
// into "Junkscore".
func camelize(name string) string {
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		sb.WriteString(title.String(word))
	}
	return sb.String()
}

func newAddTag(value string, present bool) (Action, error) {
	if !present || value == "" {
		return nil, fmt.Errorf("%w: missing tag", ErrMissingArgument)
	}
	return AddTag{Tag: value}, nil
}

func newCopyToFolder(value string, present bool) (Action, error) {
	f, err := ParseFolder(value)
	if err != nil {
		return nil, err
	}
	return CopyToFolder{Folder: f}, nil
}

func newMoveToFolder(value string, present bool) (Action, error) {
	f, err := ParseFolder(value)
	if err != nil {
		return nil, err
	}
	return MoveToFolder{Folder: f}, nil
}

func newForward(value string, present bool) (Action, error) {
	if !present || value == "" {
		return nil, fmt.Errorf("%w: missing recipient", ErrMissingArgument)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecipient, value)
	}
	return Forward{Recipient: value}, nil
}

func newJunkScore(value string, present bool) (Action, error) {
	if !present || value == "" {
		return nil, fmt.Errorf("%w: missing junk score", ErrMissingArgument)
	}
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScore, value)
	}
	score, err := strconv.Atoi(value[:end])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidScore, value, err)
	}
	return JunkScore{Score: score}, nil
}

func newReply(value string, present bool) (Action, error) {
	if !present || value == "" {
		return nil, fmt.Errorf("%w: missing reply model", ErrMissingArgument)
	}
	return Reply{ModelRef: value}, nil
}

func noArgument(a Action) actionFactory {
	return func(value string, present bool) (Action, error) {
		if present {
			return nil, fmt.Errorf("%w for action %q: %q", ErrUnexpectedArgument, a.String(), value)
		}
		return a, nil
	}
}
