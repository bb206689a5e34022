package gmail

import (
	"fmt"
	"strings"

	"tb2gmail/internal/thunderbird"
)

// FilterAction is the effect side of a Gmail filter.
type FilterAction struct {
	AddLabelIDs    []string `yaml:"add_label_ids,omitempty"`
	RemoveLabelIDs []string `yaml:"remove_label_ids,omitempty"`
	Forward        string   `yaml:"forward,omitempty"`

	// Ignored lists actions that have no Gmail counterpart and were
	// dropped, so callers can report them for review.
	Ignored []string `yaml:"ignored,omitempty"`
}

// ActionCompiler maps Thunderbird actions onto label changes.
type ActionCompiler struct {
	Labels LabelDirectory
	// TagNames renames tag identifiers ("$label2") before they are looked
	// up as label paths.
	TagNames      map[string]string
	CaseSensitive bool
}

// Compile runs two passes over actions. The first handles everything but
// tags and notes whether a folder action ran; the second adds tag labels,
// which folder routing suppresses except for the important tag.
func (c *ActionCompiler) Compile(actions []thunderbird.Action) (FilterAction, error) {
	var (
		result         FilterAction
		add, remove    idSet
		canAddTags     = true
		forwardAlready bool
	)

	for _, a := range actions {
		switch a := a.(type) {
		case thunderbird.AddTag:
			// second pass
		case thunderbird.CopyToFolder:
			id, err := c.folderLabel(a.Folder)
			if err != nil {
				return FilterAction{}, err
			}
			add.put(id)
			canAddTags = false
		case thunderbird.MoveToFolder:
			id, err := c.folderLabel(a.Folder)
			if err != nil {
				return FilterAction{}, err
			}
			add.put(id)
			remove.put(LabelInbox)
			canAddTags = false
		case thunderbird.Delete:
			add.put(LabelTrash)
		case thunderbird.Forward:
			if forwardAlready {
				return FilterAction{}, ErrAtMostOneForward
			}
			result.Forward = a.Recipient
			forwardAlready = true
		case thunderbird.JunkScore:
			switch a.Score {
			case 0:
				remove.put(LabelSpam)
			case 100:
				add.put(LabelSpam)
			default:
				return FilterAction{}, fmt.Errorf("%w: junk score %d", ErrNotImplemented, a.Score)
			}
		case thunderbird.MarkRead:
			remove.put(LabelUnread)
		case thunderbird.StopExecution, thunderbird.MarkFlagged, thunderbird.Reply:
			result.Ignored = append(result.Ignored, a.String())
		default:
			return FilterAction{}, fmt.Errorf("%w: action %T", ErrNotImplemented, a)
		}
	}

	for _, a := range actions {
		tag, ok := a.(thunderbird.AddTag)
		if !ok {
			continue
		}
		switch {
		case tag.Tag == thunderbird.ImportantTag:
			add.put(LabelImportant)
		case canAddTags:
			id, err := c.Labels.GetOrCreate(c.tagPath(tag.Tag), c.CaseSensitive)
			if err != nil {
				return FilterAction{}, fmt.Errorf("label for tag %q: %w", tag.Tag, err)
			}
			add.put(id)
		}
	}

	result.AddLabelIDs = add.ids
	result.RemoveLabelIDs = remove.ids
	return result, nil
}

func (c *ActionCompiler) folderLabel(f thunderbird.Folder) (string, error) {
	id, err := c.Labels.GetOrCreate(f.Path(), c.CaseSensitive)
	if err != nil {
		return "", fmt.Errorf("label for folder %q: %w", f.Path(), err)
	}
	return id, nil
}

func (c *ActionCompiler) tagPath(tag string) string {
	if name, ok := c.TagNames[tag]; ok && name != "" {
		return name
	}
	return strings.Trim(tag, "/")
}

// idSet keeps the first occurrence of each id.
type idSet struct {
	ids  []string
	seen map[string]bool
}

func (s *idSet) put(id string) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
}
