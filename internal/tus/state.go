package tus

// State is the phase an upload is in.
type State string

const (
	StateNotStarted   State = "not_started"
	StateInspecting   State = "inspecting"
	StateTransferring State = "transferring"
	StateComplete     State = "complete"
	StateFailed       State = "failed"
)

// Progress is reported to a ProgressFunc on every state transition and after
// every acknowledged chunk.
type Progress struct {
	Url   string
	State State
	// Offset is the last offset acknowledged by the server.
	Offset int64
	// Size is the length of the local source, 0 until it is known.
	Size int64
	// Err is set in StateFailed.
	Err error
}

type ProgressFunc func(Progress)

// tracker reports progress of a single Upload call.
type tracker struct {
	fn       ProgressFunc
	progress Progress
}

func (t *tracker) transition(state State) {
	t.progress.State = state
	t.report()
}

func (t *tracker) advance(offset int64) {
	t.progress.Offset = offset
	t.report()
}

func (t *tracker) fail(err error) error {
	t.progress.State = StateFailed
	t.progress.Err = err
	t.report()
	return err
}

func (t *tracker) report() {
	if t.fn != nil {
		t.fn(t.progress)
	}
}
