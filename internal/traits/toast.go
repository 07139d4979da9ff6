package traits

// Toast is a one-shot unlock notification for the client.
type Toast struct {
	ID      int    `json:"id"`
	TraitID string `json:"trait_id"`
	Member  string `json:"member"`
	Message string `json:"message"`
}

// ToastLog accumulates unlock toasts with session-local monotonic ids.
// The zero value is ready to use.
type ToastLog struct {
	Toasts []Toast `json:"toasts"`
	nextID int
}

// Push appends a toast and assigns it the next id.
func (l *ToastLog) Push(traitID, member, message string) Toast {
	l.nextID++
	t := Toast{ID: l.nextID, TraitID: traitID, Member: member, Message: message}
	l.Toasts = append(l.Toasts, t)
	return t
}

// Drain returns the pending toasts and clears the log. Ids keep
// incrementing across drains.
func (l *ToastLog) Drain() []Toast {
	out := l.Toasts
	l.Toasts = nil
	return out
}
