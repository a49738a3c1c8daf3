package video

import "fmt"

// ClipList keeps clips in insertion order with unique identifiers.
// It is owned by a single view and is not safe for concurrent use.
type ClipList struct {
	clips []*Clip
}

// NewClipList creates an empty clip list
func NewClipList() *ClipList {
	return &ClipList{clips: make([]*Clip, 0)}
}

// Add appends clips in order. A clip whose ID is already present is
// rejected and nothing from the batch is added.
func (l *ClipList) Add(clips ...*Clip) error {
	seen := make(map[string]struct{}, len(l.clips)+len(clips))
	for _, c := range l.clips {
		seen[c.ID] = struct{}{}
	}
	for _, c := range clips {
		if c == nil {
			return fmt.Errorf("nil clip: %w", ErrClipNotFound)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%s: %w", c.ID, ErrDuplicateClip)
		}
		seen[c.ID] = struct{}{}
	}

	l.clips = append(l.clips, clips...)
	return nil
}

// Remove drops the clip with the given id and returns it. Every other clip
// keeps its identifier and relative order.
func (l *ClipList) Remove(id string) (*Clip, error) {
	for i, c := range l.clips {
		if c.ID != id {
			continue
		}
		next := make([]*Clip, 0, len(l.clips)-1)
		next = append(next, l.clips[:i]...)
		next = append(next, l.clips[i+1:]...)
		l.clips = next
		return c, nil
	}
	return nil, fmt.Errorf("%s: %w", id, ErrClipNotFound)
}

// Get returns the clip with the given id
func (l *ClipList) Get(id string) (*Clip, bool) {
	for _, c := range l.clips {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// At returns the clip at index i
func (l *ClipList) At(i int) (*Clip, bool) {
	if i < 0 || i >= len(l.clips) {
		return nil, false
	}
	return l.clips[i], true
}

// All returns a copy of the clips in order
func (l *ClipList) All() []*Clip {
	return append([]*Clip(nil), l.clips...)
}

// IDs returns the identifiers in order
func (l *ClipList) IDs() []string {
	ids := make([]string, len(l.clips))
	for i, c := range l.clips {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the number of clips
func (l *ClipList) Len() int {
	return len(l.clips)
}

// TotalSize returns the sum of clip sizes in bytes
func (l *ClipList) TotalSize() int64 {
	var total int64
	for _, c := range l.clips {
		total += c.Size
	}
	return total
}
