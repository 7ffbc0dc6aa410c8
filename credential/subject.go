package credential

import "time"

// Kind is the specific credential type of a subject variant.
type Kind string

const (
	KindItemCreated   Kind = "ItemCreated"
	KindItemCompleted Kind = "ItemCompleted"
	KindListOwnership Kind = "ListOwnership"
)

// Subject is one of the supported credential subject variants. The set is
// closed: only the types in this package implement it.
type Subject interface {
	Kind() Kind

	subjectMap() map[string]any
}

// ItemCreatedSubject attests that an item was added to a list.
type ItemCreatedSubject struct {
	DID        string
	ItemID     string
	ListID     string
	ItemName   string
	CreatorDID string
	CreatedAt  time.Time
}

// Kind implements Subject.
func (s ItemCreatedSubject) Kind() Kind { return KindItemCreated }

func (s ItemCreatedSubject) subjectMap() map[string]any {
	return map[string]any{
		"id":         s.DID,
		"itemId":     s.ItemID,
		"listId":     s.ListID,
		"itemName":   s.ItemName,
		"creatorDid": s.CreatorDID,
		"createdAt":  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ItemCompletedSubject attests that an item was checked off. Unchecking an
// item later issues a new credential; it never mutates this one.
type ItemCompletedSubject struct {
	DID          string
	ItemID       string
	ListID       string
	ItemName     string
	CompleterDID string
	CompletedAt  time.Time
}

// Kind implements Subject.
func (s ItemCompletedSubject) Kind() Kind { return KindItemCompleted }

func (s ItemCompletedSubject) subjectMap() map[string]any {
	return map[string]any{
		"id":           s.DID,
		"itemId":       s.ItemID,
		"listId":       s.ListID,
		"itemName":     s.ItemName,
		"completerDid": s.CompleterDID,
		"completedAt":  s.CompletedAt.UTC().Format(time.RFC3339),
	}
}

// ListOwnershipSubject attests ownership of a list asset. The role is always
// "owner".
type ListOwnershipSubject struct {
	DID      string
	ListID   string
	AssetDID string
	OwnerDID string
	ListName string
}

// Kind implements Subject.
func (s ListOwnershipSubject) Kind() Kind { return KindListOwnership }

func (s ListOwnershipSubject) subjectMap() map[string]any {
	return map[string]any{
		"id":       s.DID,
		"listId":   s.ListID,
		"assetDid": s.AssetDID,
		"ownerDid": s.OwnerDID,
		"listName": s.ListName,
		"role":     "owner",
	}
}
