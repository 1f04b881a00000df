package domain

// ValidationWeight is one participant's standing in the current epoch group.
type ValidationWeight struct {
	MemberAddress      string
	Weight             int64
	ConfirmationWeight int64
}

// EpochGroupData is the validator weight table for one epoch. Weight
// comparisons are only meaningful within a single EpochIndex.
type EpochGroupData struct {
	EpochIndex  uint64
	TotalWeight int64
	Weights     []ValidationWeight
}

// Find returns the entry whose member address exactly matches addr.
func (e *EpochGroupData) Find(addr string) (ValidationWeight, bool) {
	for _, w := range e.Weights {
		if w.MemberAddress == addr {
			return w, true
		}
	}
	return ValidationWeight{}, false
}
