package gmail

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// System label ids.
const (
	LabelInbox     = "INBOX"
	LabelTrash     = "TRASH"
	LabelSpam      = "SPAM"
	LabelUnread    = "UNREAD"
	LabelImportant = "IMPORTANT"
)

// LabelDirectory resolves hierarchical label paths ("Work/Clients") to
// label ids. One directory is shared by every rule of a compilation run so
// repeated lookups of the same path agree.
type LabelDirectory interface {
	FindByPath(path string, caseSensitive bool) (id string, found bool, err error)
	// GetOrCreate creates missing path segments left to right, reusing
	// existing prefixes.
	GetOrCreate(path string, caseSensitive bool) (id string, err error)
}

// Label is a user label as the directory knows it.
type Label struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// MemoryLabels is a LabelDirectory kept in memory. It backs dry runs and
// tests; find-or-create runs under a mutex so callers may share it.
type MemoryLabels struct {
	mu      sync.Mutex
	labels  []Label
	created []Label
	newID   func() string
}

// NewMemoryLabels returns a directory seeded with existing labels.
func NewMemoryLabels(existing ...Label) *MemoryLabels {
	return &MemoryLabels{
		labels: append([]Label(nil), existing...),
		newID:  func() string { return "Label_" + uuid.NewString() },
	}
}

func (m *MemoryLabels) FindByPath(path string, caseSensitive bool) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.find(path, caseSensitive)
	return l.ID, ok, nil
}

func (m *MemoryLabels) GetOrCreate(path string, caseSensitive bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.find(path, caseSensitive); ok {
		return l.ID, nil
	}

	var l Label
	prefix := ""
	for _, name := range strings.Split(path, "/") {
		full := prefix + name
		var ok bool
		if l, ok = m.find(full, caseSensitive); !ok {
			l = Label{ID: m.newID(), Name: full}
			m.labels = append(m.labels, l)
			m.created = append(m.created, l)
		}
		// Children hang off the stored spelling of the prefix.
		prefix = l.Name + "/"
	}
	return l.ID, nil
}

// Labels returns every known label, seeded ones first.
func (m *MemoryLabels) Labels() []Label {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Label(nil), m.labels...)
}

// Created returns the labels GetOrCreate had to add, in creation order.
func (m *MemoryLabels) Created() []Label {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Label(nil), m.created...)
}

func (m *MemoryLabels) find(path string, caseSensitive bool) (Label, bool) {
	if caseSensitive {
		for _, l := range m.labels {
			if l.Name == path {
				return l, true
			}
		}
		return Label{}, false
	}
	fold := cases.Fold()
	want := fold.String(path)
	for _, l := range m.labels {
		if fold.String(l.Name) == want {
			return l, true
		}
	}
	return Label{}, false
}
