package stats

// Watcher is a coarse staleness check: it reports a change when the
// observed collection length differs from the last one seen.
type Watcher struct {
	count func() (int, error)
	last  int
	ready bool
}

func NewWatcher(count func() (int, error)) *Watcher {
	return &Watcher{count: count}
}

// Changed polls the collection. The first call only records a baseline.
func (w *Watcher) Changed() (bool, error) {
	n, err := w.count()
	if err != nil {
		return false, err
	}
	if !w.ready {
		w.ready = true
		w.last = n
		return false, nil
	}
	if n == w.last {
		return false, nil
	}
	w.last = n
	return true, nil
}
