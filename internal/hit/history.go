package hit

// RecentWindowSize is the number of trailing records pattern rules inspect.
const RecentWindowSize = 3

// #region history
// History is a bounded, age-pruned sequence of accepted hits. The recent
// window is the trailing RecentWindowSize records, so it is a suffix of the
// full sequence by construction and both shrink together under pruning.
type History struct {
	records []Record
	maxLen  int
	ttl     float64
}

// NewHistory creates a history bounded to maxLen records, each expiring ttl
// time-units after its timestamp.
func NewHistory(maxLen int, ttl float64) *History {
	if maxLen < RecentWindowSize {
		maxLen = RecentWindowSize
	}
	return &History{
		records: make([]Record, 0, maxLen),
		maxLen:  maxLen,
		ttl:     ttl,
	}
}

// Append adds a record, evicting the oldest when over capacity.
func (h *History) Append(r Record) {
	if len(h.records) >= h.maxLen {
		n := copy(h.records, h.records[1:])
		h.records = h.records[:n]
	}
	h.records = append(h.records, r)
}

// Prune drops records that are no longer valid at the given clock value.
func (h *History) Prune(now float64) {
	keep := h.records[:0]
	for _, r := range h.records {
		if r.Valid(now, h.ttl) {
			keep = append(keep, r)
		}
	}
	h.records = keep
}

// Len returns the number of live records.
func (h *History) Len() int {
	return len(h.records)
}

// Recent returns a copy of the recent window, oldest first.
func (h *History) Recent() []Record {
	start := len(h.records) - RecentWindowSize
	if start < 0 {
		start = 0
	}
	out := make([]Record, len(h.records)-start)
	copy(out, h.records[start:])
	return out
}

// Last returns the most recent record, if any.
func (h *History) Last() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Clear removes all records.
func (h *History) Clear() {
	h.records = h.records[:0]
}

// #endregion history
