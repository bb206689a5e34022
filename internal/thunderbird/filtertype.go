package thunderbird

import (
	"fmt"
	"math/bits"
	"sort"
)

// Type is the filter type bitmask (nsMsgFilterType).
type Type uint32

const (
	TypeNone            Type = 0x00
	TypeInboxRule       Type = 0x01
	TypeInboxJavaScript Type = 0x02
	TypeInbox                = TypeInboxRule | TypeInboxJavaScript
	TypeNewsRule        Type = 0x04
	TypeNewsJavaScript  Type = 0x08
	TypeNews                 = TypeNewsRule | TypeNewsJavaScript
	TypeIncoming             = TypeInbox | TypeNews
	TypeManual          Type = 0x10
	TypePostPlugin      Type = 0x20 // after bayes filtering
	TypePostOutgoing    Type = 0x40 // after sending
	TypeArchive         Type = 0x80 // before archiving
	TypePeriodic        Type = 0x100
	TypeAll                  = TypeIncoming | TypeManual
)

// TypeFlag names one canonical bit pattern.
type TypeFlag struct {
	Name  string
	Value Type
}

// TypeFlags is the canonical flag table in declaration order.
var TypeFlags = []TypeFlag{
	{"None", TypeNone},
	{"InboxRule", TypeInboxRule},
	{"InboxJavaScript", TypeInboxJavaScript},
	{"Inbox", TypeInbox},
	{"NewsRule", TypeNewsRule},
	{"NewsJavaScript", TypeNewsJavaScript},
	{"News", TypeNews},
	{"Incoming", TypeIncoming},
	{"Manual", TypeManual},
	{"PostPlugin", TypePostPlugin},
	{"PostOutgoing", TypePostOutgoing},
	{"Archive", TypeArchive},
	{"Periodic", TypePeriodic},
	{"All", TypeAll},
}

// widestFirst holds the non-zero flags ordered by descending population
// count, ties broken by ascending value.
var widestFirst = sortWidestFirst(TypeFlags)

func sortWidestFirst(flags []TypeFlag) []TypeFlag {
	out := make([]TypeFlag, 0, len(flags))
	for _, f := range flags {
		if f.Value != 0 {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := bits.OnesCount32(uint32(out[i].Value)), bits.OnesCount32(uint32(out[j].Value))
		if bi != bj {
			return bi > bj
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Decompose returns the canonical flag names covering t. Wider flags win
// over their constituents, so 0x03 reports "Inbox" rather than
// "InboxRule, InboxJavaScript". Bits no flag covers are an error.
func Decompose(t Type) ([]string, error) {
	if t == 0 {
		for _, f := range TypeFlags {
			if f.Value == 0 {
				return []string{f.Name}, nil
			}
		}
		return []string{}, nil
	}

	var names []string
	remaining := t
	for _, f := range widestFirst {
		if remaining&f.Value == f.Value {
			names = append(names, f.Name)
			remaining &^= f.Value
			if remaining == 0 {
				break
			}
		}
	}
	if remaining != 0 {
		return nil, fmt.Errorf("%w: %d (bits 0x%x not representable)", ErrUnsupportedType, t, uint32(remaining))
	}
	return names, nil
}
