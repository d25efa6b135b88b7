package tracing

import (
	"github.com/sarchlab/digisim/datarecording"
	"github.com/sarchlab/digisim/instrumentation/hooking"
	"github.com/sarchlab/digisim/mem/ramsel"
)

// CommitTableName is the table the CommitRecorder writes into.
const CommitTableName = "ram_commits"

// CommitEntry is a row of the commit table.
type CommitEntry struct {
	Seq       uint64
	Component string
	Address   uint64
	Data      uint64
	Previous  uint64
}

// CommitRecorder records every word committed by the elements it is
// attached to. Seq numbers the commits in the order they happen, across all
// elements sharing the recorder.
type CommitRecorder struct {
	recorder datarecording.DataRecorder
	seq      uint64
}

// NewCommitRecorder creates the commit table in recorder and returns a hook
// that fills it.
func NewCommitRecorder(recorder datarecording.DataRecorder) *CommitRecorder {
	recorder.CreateTable(CommitTableName, CommitEntry{})

	return &CommitRecorder{recorder: recorder}
}

// Func records write commits and ignores every other hook site.
func (r *CommitRecorder) Func(ctx hooking.HookCtx) {
	commit, ok := ctx.Item.(ramsel.WriteCommit)
	if !ok || ctx.Pos != ramsel.HookPosWriteCommit {
		return
	}

	r.recorder.InsertData(CommitTableName, CommitEntry{
		Seq:       r.seq,
		Component: domainName(ctx.Domain),
		Address:   commit.Address,
		Data:      commit.Data,
		Previous:  commit.Previous,
	})
	r.seq++
}

// NumRecorded returns the number of commits recorded so far.
func (r *CommitRecorder) NumRecorded() uint64 {
	return r.seq
}
