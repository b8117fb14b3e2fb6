package materializer

// State is the position of a materializer in its batch cycle
type State int

const (
	// StateIdle waits for the next proximity signal
	StateIdle State = iota
	// StateMaterializingBatch is rendering a batch
	StateMaterializingBatch
	// StateAllMaterialized is terminal, every descriptor has a shell
	StateAllMaterialized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMaterializingBatch:
		return "materializing-batch"
	case StateAllMaterialized:
		return "all-materialized"
	default:
		return "unknown"
	}
}
