package node

import (
	"errors"

	"github.com/sarchlab/digisim/signal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

// inverter drives the negation of its input onto its output.
type inverter struct {
	in, out   *signal.Wire
	scheduler Scheduler
	level     bool
}

func newInverter(in, out *signal.Wire) *inverter {
	inv := &inverter{in: in, out: out}
	in.AddObserver(inv)

	return inv
}

func (i *inverter) SetScheduler(s Scheduler) {
	i.scheduler = s
}

func (i *inverter) NotifyChange(signal.Source) {
	if i.scheduler != nil {
		i.scheduler.Schedule(i)
	}
}

func (i *inverter) ReadInputs() error {
	b, err := i.in.Bool()
	if err != nil {
		return err
	}

	i.level = b

	return nil
}

func (i *inverter) WriteOutputs() error {
	i.out.SetBool(!i.level)
	return nil
}

var _ = Describe("Network", func() {
	var (
		mockCtrl *gomock.Controller
		network  *Network
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		network = NewNetwork(10)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should read all inputs before writing any output", func() {
		n1 := NewMockNode(mockCtrl)
		n2 := NewMockNode(mockCtrl)

		r1 := n1.EXPECT().ReadInputs().Return(nil)
		r2 := n2.EXPECT().ReadInputs().Return(nil)
		n1.EXPECT().WriteOutputs().Return(nil).After(r1).After(r2)
		n2.EXPECT().WriteOutputs().Return(nil).After(r1).After(r2)

		network.Add(n1)
		network.Add(n2)

		iterations, err := network.Settle()

		Expect(err).NotTo(HaveOccurred())
		Expect(iterations).To(Equal(1))
		Expect(network.Pending()).To(Equal(0))
	})

	It("should not schedule a node twice in one iteration", func() {
		n := NewMockNode(mockCtrl)
		n.EXPECT().ReadInputs().Return(nil).Times(1)
		n.EXPECT().WriteOutputs().Return(nil).Times(1)

		network.Add(n)
		network.Schedule(n)

		Expect(network.Pending()).To(Equal(1))

		_, err := network.Settle()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should stop at the first failing node", func() {
		failure := errors.New("boom")
		n := NewMockNode(mockCtrl)
		n.EXPECT().ReadInputs().Return(failure)

		network.Add(n)

		_, err := network.Settle()

		Expect(errors.Is(err, failure)).To(BeTrue())
	})

	It("should propagate through a chain of nodes", func() {
		a := signal.NewWire("a", 1)
		b := signal.NewWire("b", 1)
		c := signal.NewWire("c", 1)
		a.SetBool(false)
		b.SetBool(false)
		c.SetBool(false)
		network.Add(newInverter(a, b))
		network.Add(newInverter(b, c))

		_, err := network.Settle()
		Expect(err).NotTo(HaveOccurred())

		cLevel, err := c.Bool()
		Expect(err).NotTo(HaveOccurred())
		Expect(cLevel).To(BeFalse())

		a.SetBool(true)
		_, err = network.Settle()
		Expect(err).NotTo(HaveOccurred())

		cLevel, err = c.Bool()
		Expect(err).NotTo(HaveOccurred())
		Expect(cLevel).To(BeTrue())
	})

	It("should report oscillating networks", func() {
		loop := signal.NewWire("loop", 1)
		loop.SetBool(false)
		network.Add(newInverter(loop, loop))

		_, err := network.Settle()

		Expect(errors.Is(err, ErrNotStable)).To(BeTrue())
	})
})
