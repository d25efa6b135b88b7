// Package node defines the two-phase evaluation contract that every
// simulation node honors and a small network that settles a set of nodes to
// a fixpoint.
//
// A settling iteration first lets every scheduled node observe its inputs
// (ReadInputs), and only then lets them produce their outputs
// (WriteOutputs). Because no output changes while inputs are being observed,
// the order in which nodes are visited within one phase does not matter.
package node

// A Node is evaluated in two phases. ReadInputs samples the input signals and
// may update internal state. WriteOutputs publishes outputs derived only from
// that state and must not change it.
type Node interface {
	ReadInputs() error
	WriteOutputs() error
}

// A Scheduler accepts nodes that need to be evaluated again.
type Scheduler interface {
	Schedule(n Node)
}

// A Schedulable node can be told which scheduler to notify when one of its
// inputs changes.
type Schedulable interface {
	Node
	SetScheduler(s Scheduler)
}
