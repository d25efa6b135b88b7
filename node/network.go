package node

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNotStable is returned when a network does not reach a fixpoint within
// the allowed number of iterations.
var ErrNotStable = errors.New("network did not settle")

// DefaultMaxIterations bounds a settling pass when no limit is given.
const DefaultMaxIterations = 1000

// A Network settles a set of nodes. Nodes are scheduled when they are added
// and whenever an input they observe changes.
type Network struct {
	maxIterations int
	nodes         []Node
	queue         []Node
	queued        map[Node]bool
	log           logrus.FieldLogger
}

var _ Scheduler = (*Network)(nil)

// NewNetwork creates an empty network. A non-positive maxIterations selects
// DefaultMaxIterations.
func NewNetwork(maxIterations int) *Network {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	return &Network{
		maxIterations: maxIterations,
		queued:        make(map[Node]bool),
		log:           logrus.StandardLogger(),
	}
}

// WithLogger replaces the logger used to report settling passes.
func (n *Network) WithLogger(l logrus.FieldLogger) *Network {
	n.log = l
	return n
}

// Add attaches a node to the network and schedules it.
func (n *Network) Add(nd Node) {
	n.nodes = append(n.nodes, nd)

	if s, ok := nd.(Schedulable); ok {
		s.SetScheduler(n)
	}

	n.Schedule(nd)
}

// Nodes returns the nodes in the order they were added.
func (n *Network) Nodes() []Node {
	return n.nodes
}

// Schedule queues nd for the next settling iteration.
func (n *Network) Schedule(nd Node) {
	if n.queued[nd] {
		return
	}

	n.queued[nd] = true
	n.queue = append(n.queue, nd)
}

// Pending returns the number of nodes waiting to be evaluated.
func (n *Network) Pending() int {
	return len(n.queue)
}

// Settle runs settling iterations until no node is scheduled and returns the
// number of iterations it took. If a node fails, the pass stops and the nodes
// of the failed iteration are dropped from the queue.
func (n *Network) Settle() (int, error) {
	iterations := 0

	for len(n.queue) > 0 {
		if iterations >= n.maxIterations {
			n.log.WithField("iterations", iterations).
				Warn("network is oscillating")

			return iterations, fmt.Errorf(
				"%w after %d iterations", ErrNotStable, iterations)
		}

		batch := n.queue
		n.queue = nil
		n.queued = make(map[Node]bool)

		if err := n.runIteration(batch); err != nil {
			return iterations, fmt.Errorf(
				"settling iteration %d: %w", iterations, err)
		}

		iterations++
	}

	n.log.WithField("iterations", iterations).Debug("network settled")

	return iterations, nil
}

func (n *Network) runIteration(batch []Node) error {
	for _, nd := range batch {
		if err := nd.ReadInputs(); err != nil {
			return err
		}
	}

	for _, nd := range batch {
		if err := nd.WriteOutputs(); err != nil {
			return err
		}
	}

	return nil
}
