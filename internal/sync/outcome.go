package sync

// ItemError records one failed item. The run keeps going; errors never abort
// a traversal.
type ItemError struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}

// Outcome is the aggregated report of one sync run. Append-only while the run
// executes; callers receive it once, complete.
type Outcome struct {
	Uploaded   []string    `json:"uploaded"`
	Downloaded []string    `json:"downloaded"`
	Errors     []ItemError `json:"errors"`
}

func (o *Outcome) fail(item string, err error) {
	o.Errors = append(o.Errors, ItemError{Item: item, Message: err.Error()})
}

func (o *Outcome) merge(other *Outcome) {
	o.Uploaded = append(o.Uploaded, other.Uploaded...)
	o.Downloaded = append(o.Downloaded, other.Downloaded...)
	o.Errors = append(o.Errors, other.Errors...)
}

// OK reports whether the run completed without any per-item failure.
func (o *Outcome) OK() bool {
	return len(o.Errors) == 0
}
