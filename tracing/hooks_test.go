package tracing

import (
	"github.com/sarchlab/digisim/mem/ramsel"
	"github.com/sarchlab/digisim/signal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

type ramRig struct {
	addr, cs, we, oe, data *signal.Wire
	ram                    *ramsel.Comp
}

func newRAMRig() *ramRig {
	r := &ramRig{
		addr: signal.NewWire("A", 4),
		cs:   signal.NewWire("CS", 1),
		we:   signal.NewWire("WE", 1),
		oe:   signal.NewWire("OE", 1),
		data: signal.NewWire("D_in", 8),
	}
	for _, w := range []*signal.Wire{r.addr, r.cs, r.we, r.oe, r.data} {
		w.Set(0)
	}

	r.ram = ramsel.MakeBuilder().WithAddrBits(4).Build("RAM")
	err := r.ram.SetInputs(
		[]signal.Source{r.addr, r.cs, r.we, r.oe, r.data})
	Expect(err).NotTo(HaveOccurred())

	return r
}

func (r *ramRig) write(addr, value uint64) {
	r.cs.Set(1)
	r.addr.Set(addr)
	r.we.Set(1)
	Expect(r.ram.ReadInputs()).To(Succeed())

	r.data.Set(value)
	r.we.Set(0)
	Expect(r.ram.ReadInputs()).To(Succeed())
}

var _ = Describe("LogHook", func() {
	var (
		rig    *ramRig
		logger *logrus.Logger
		hook   *logtest.Hook
	)

	BeforeEach(func() {
		rig = newRAMRig()
		logger, hook = logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		rig.ram.AcceptHook(NewLogHook(logger))
	})

	It("should log arms and commits", func() {
		rig.write(3, 0x21)

		entries := hook.AllEntries()
		Expect(entries).To(HaveLen(2))

		Expect(entries[0].Level).To(Equal(logrus.DebugLevel))
		Expect(entries[0].Data["address"]).To(Equal(uint64(3)))
		Expect(entries[0].Data["component"]).To(Equal("RAM"))

		Expect(entries[1].Message).To(Equal("word committed"))
		Expect(entries[1].Data["data"]).To(Equal(uint64(0x21)))
		Expect(entries[1].Data["pos"]).To(Equal(ramsel.HookPosWriteCommit.Name))
	})

	It("should stay quiet while the RAM is only read", func() {
		rig.cs.Set(1)
		rig.oe.Set(1)
		Expect(rig.ram.ReadInputs()).To(Succeed())

		Expect(hook.AllEntries()).To(BeEmpty())
	})
})

var _ = Describe("CommitRecorder", func() {
	var (
		mockCtrl *gomock.Controller
		recorder *MockDataRecorder
		rig      *ramRig
		commits  *CommitRecorder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		recorder = NewMockDataRecorder(mockCtrl)
		recorder.EXPECT().CreateTable(CommitTableName, CommitEntry{})

		rig = newRAMRig()
		commits = NewCommitRecorder(recorder)
		rig.ram.AcceptHook(commits)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record each commit once", func() {
		first := recorder.EXPECT().InsertData(CommitTableName, CommitEntry{
			Seq: 0, Component: "RAM", Address: 1, Data: 0x10,
		})
		recorder.EXPECT().InsertData(CommitTableName, CommitEntry{
			Seq: 1, Component: "RAM", Address: 1, Data: 0x11, Previous: 0x10,
		}).After(first)

		rig.write(1, 0x10)
		Expect(rig.ram.ReadInputs()).To(Succeed())
		rig.write(1, 0x11)

		Expect(commits.NumRecorded()).To(Equal(uint64(2)))
	})
})
