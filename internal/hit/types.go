package hit

// #region record
// Record represents one accepted impact. Immutable once created; discarded by
// the history buffer once stale.
type Record struct {
	Force         float64
	Timestamp     float64
	Origin        string
	Effectiveness float64
}

// Valid reports whether the record is still live at the given clock value:
// younger than the TTL and carrying positive force.
func (r Record) Valid(now, ttl float64) bool {
	return r.Force > 0 && now-r.Timestamp < ttl
}

// #endregion record
