package models

import "fmt"

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target points a notification at a post or a comment. Switch on Kind;
// there is no other variant.
type Target struct {
	Kind     TargetKind `gorm:"size:16;not null" json:"type"`
	EntityID uint       `gorm:"not null" json:"id"`
}

func PostTarget(id uint) Target {
	return Target{Kind: TargetPost, EntityID: id}
}

func CommentTarget(id uint) Target {
	return Target{Kind: TargetComment, EntityID: id}
}

func (t Target) Validate() error {
	switch t.Kind {
	case TargetPost, TargetComment:
		if t.EntityID == 0 {
			return fmt.Errorf("target %s has no id", t.Kind)
		}
		return nil
	default:
		return fmt.Errorf("unknown target kind %q", t.Kind)
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.EntityID)
}
