package wizard

// OriginList is the countries-of-origin selection. Entries loaded from the
// selected application are locked and cannot be removed one by one.
type OriginList struct {
	entries []string
	locked  map[string]bool
}

// NewOriginList creates a list whose initial entries are locked
func NewOriginList(locked ...string) *OriginList {
	l := &OriginList{locked: make(map[string]bool, len(locked))}
	for _, o := range locked {
		if o == "" || l.Contains(o) {
			continue
		}
		l.entries = append(l.entries, o)
		l.locked[o] = true
	}
	return l
}

// Entries returns a copy of the selection
func (l *OriginList) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Len returns the number of entries
func (l *OriginList) Len() int { return len(l.entries) }

// Contains reports whether origin is selected
func (l *OriginList) Contains(origin string) bool {
	for _, e := range l.entries {
		if e == origin {
			return true
		}
	}
	return false
}

// IsLocked reports whether origin was pre-loaded
func (l *OriginList) IsLocked(origin string) bool {
	return l.locked[origin]
}

// Add appends an origin; duplicates and blanks are ignored
func (l *OriginList) Add(origin string) bool {
	if origin == "" || l.Contains(origin) {
		return false
	}
	l.entries = append(l.entries, origin)
	return true
}

// Remove drops a user-added origin. Locked entries stay.
func (l *OriginList) Remove(origin string) bool {
	if l.locked[origin] {
		return false
	}
	for i, e := range l.entries {
		if e == origin {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyBulkSelection replaces the list with a multi-select result. Locked
// entries missing from selection are put back, and the corrected selection
// is returned so the caller can redisplay it.
func (l *OriginList) ApplyBulkSelection(selection []string) []string {
	seen := make(map[string]bool, len(selection))
	next := make([]string, 0, len(selection)+len(l.locked))
	for _, o := range selection {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		next = append(next, o)
	}
	// keep locked entries in their original order
	for _, o := range l.entries {
		if l.locked[o] && !seen[o] {
			seen[o] = true
			next = append(next, o)
		}
	}
	l.entries = next
	return l.Entries()
}

// Available returns the countries not yet selected
func (l *OriginList) Available(all []string) []string {
	var out []string
	for _, c := range all {
		if !l.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}
