package collision

// Stats counts world activity since creation or the last ResetStats
type Stats struct {
	// UpdatedShapes counts shapes re-placed by a drain
	UpdatedShapes int
	// AddedShapes counts successful AddShape calls
	AddedShapes int
	// CreatedGridCells and DeletedGridCells track cell churn
	CreatedGridCells int
	DeletedGridCells int
	// BroadPhaseCalls counts queries that gathered candidates
	BroadPhaseCalls int
	// CellsTouched counts live cells visited by broad phases
	CellsTouched int
	// BroadPhaseChecksPrePredicate counts candidates that passed the mask,
	// BroadPhaseChecksPostPredicate those that also passed the predicate
	BroadPhaseChecksPrePredicate  int
	BroadPhaseChecksPostPredicate int
	// CollisionChecks counts narrow phase tests, CollisionMatches the positive ones
	CollisionChecks  int
	CollisionMatches int
}

// Stats returns a copy of the counters
func (w *World) Stats() Stats { return w.stats }

// ResetStats zeroes the counters
func (w *World) ResetStats() { w.stats = Stats{} }
