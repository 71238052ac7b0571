package nativetask_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppryga-nordic/nativesim/nativetask"
)

var _ = Describe("Registry", func() {
	var (
		r     *nativetask.Registry
		order []string
	)

	BeforeEach(func() {
		r = nativetask.NewRegistry()
		order = nil
	})

	record := func(tag string) func() {
		return func() { order = append(order, tag) }
	}

	register := func(tag string, p nativetask.Phase, prio int) {
		r.Register(nativetask.Task{
			Name:     tag,
			Func:     record(tag),
			Phase:    p,
			Priority: prio,
		})
	}

	It("should run tasks of a phase in ascending priority order", func() {
		register("late", nativetask.PhasePreBoot1, 10)
		register("early", nativetask.PhasePreBoot1, 0)
		register("middle", nativetask.PhasePreBoot1, 5)

		r.RunPhase(nativetask.PhasePreBoot1)

		Expect(order).To(Equal([]string{"early", "middle", "late"}))
	})

	It("should only run tasks of the requested phase", func() {
		register("A", nativetask.PhasePreBoot1, 0)
		register("B", nativetask.PhasePreBoot1, 10)
		register("C", nativetask.PhaseOnExit, 0)

		r.RunPhase(nativetask.PhasePreBoot1)
		Expect(order).To(Equal([]string{"A", "B"}))

		order = nil
		r.RunPhase(nativetask.PhaseOnExit)
		Expect(order).To(Equal([]string{"C"}))
	})

	It("should run nothing for a phase with no task", func() {
		register("A", nativetask.PhasePreBoot2, 0)

		r.RunPhase(nativetask.PhaseFirstSleep)

		Expect(order).To(BeEmpty())
	})

	It("should keep registration order for equal priorities", func() {
		register("first", nativetask.PhasePreBoot3, 4)
		register("second", nativetask.PhasePreBoot3, 4)
		register("third", nativetask.PhasePreBoot3, 4)

		r.RunPhase(nativetask.PhasePreBoot3)

		Expect(order).To(Equal([]string{"first", "second", "third"}))
	})

	It("should replay the same schedule when a phase is dispatched again",
		func() {
			register("a", nativetask.PhasePreBoot1, 2)
			register("b", nativetask.PhasePreBoot1, 1)

			r.RunPhase(nativetask.PhasePreBoot1)
			r.RunPhase(nativetask.PhasePreBoot1)

			Expect(order).To(Equal([]string{"b", "a", "b", "a"}))
		})

	It("should derive a task name when none is given", func() {
		r.Register(nativetask.Task{
			Func:  func() {},
			Phase: nativetask.PhasePreBoot1,
		})

		tasks := r.Tasks(nativetask.PhasePreBoot1)
		Expect(tasks).To(HaveLen(1))
		Expect(tasks[0].Name).NotTo(BeEmpty())
	})

	It("should list tasks in dispatch order", func() {
		register("z", nativetask.PhasePreBoot2, 9)
		register("a", nativetask.PhasePreBoot2, 1)

		tasks := r.Tasks(nativetask.PhasePreBoot2)

		Expect(tasks).To(HaveLen(2))
		Expect(tasks[0].Name).To(Equal("a"))
		Expect(tasks[1].Name).To(Equal("z"))
	})

	It("should refuse registration after the first dispatch", func() {
		register("a", nativetask.PhasePreBoot1, 0)
		r.RunPhase(nativetask.PhasePreBoot1)

		Expect(func() {
			register("b", nativetask.PhasePreBoot2, 0)
		}).To(Panic())
	})

	It("should refuse registration after an explicit freeze", func() {
		r.Freeze()

		Expect(func() {
			register("a", nativetask.PhasePreBoot1, 0)
		}).To(Panic())
	})

	It("should panic when dispatching an undefined phase", func() {
		Expect(func() {
			r.RunPhase(nativetask.Phase(5))
		}).To(Panic())

		Expect(func() {
			r.RunPhase(nativetask.Phase(-1))
		}).To(Panic())
	})

	It("should panic when registering a task without a callback", func() {
		Expect(func() {
			r.Register(nativetask.Task{Phase: nativetask.PhasePreBoot1})
		}).To(Panic())
	})

	It("should panic when registering a task with an undefined phase",
		func() {
			Expect(func() {
				r.Register(nativetask.Task{
					Func:  func() {},
					Phase: nativetask.Phase(7),
				})
			}).To(Panic())
		})

	It("should panic when registering a task with a negative priority",
		func() {
			Expect(func() {
				r.Register(nativetask.Task{
					Func:     func() {},
					Phase:    nativetask.PhasePreBoot1,
					Priority: -1,
				})
			}).To(Panic())
		})
})

type hookRecord struct {
	pos   string
	phase nativetask.Phase
	task  string
}

type recordingHook struct {
	records []hookRecord
}

func (h *recordingHook) Func(ctx nativetask.HookCtx) {
	h.records = append(h.records, hookRecord{
		pos:   ctx.Pos.Name,
		phase: ctx.Phase,
		task:  ctx.Task.Name,
	})
}

var _ = Describe("Registry hooks", func() {
	It("should trigger hooks around every task of the phase", func() {
		r := nativetask.NewRegistry()
		hook := &recordingHook{}
		r.AcceptHook(hook)

		r.Register(nativetask.Task{
			Name: "a", Func: func() {},
			Phase: nativetask.PhaseFirstSleep, Priority: 0,
		})
		r.Register(nativetask.Task{
			Name: "b", Func: func() {},
			Phase: nativetask.PhaseFirstSleep, Priority: 1,
		})

		r.RunPhase(nativetask.PhaseFirstSleep)

		Expect(hook.records).To(Equal([]hookRecord{
			{pos: "PhaseStart", phase: nativetask.PhaseFirstSleep},
			{pos: "BeforeTask", phase: nativetask.PhaseFirstSleep, task: "a"},
			{pos: "AfterTask", phase: nativetask.PhaseFirstSleep, task: "a"},
			{pos: "BeforeTask", phase: nativetask.PhaseFirstSleep, task: "b"},
			{pos: "AfterTask", phase: nativetask.PhaseFirstSleep, task: "b"},
			{pos: "PhaseEnd", phase: nativetask.PhaseFirstSleep},
		}))
	})
})

var defaultRegistryOrder []string

var _ = Describe("Default registry", func() {
	It("should dispatch tasks registered through the package functions",
		func() {
			nativetask.RegisterNamed("pkg-level", func() {
				defaultRegistryOrder = append(defaultRegistryOrder, "pkg-level")
			}, nativetask.PhasePreBoot1, 0)

			nativetask.RunPhase(nativetask.PhasePreBoot1)

			Expect(defaultRegistryOrder).To(Equal([]string{"pkg-level"}))
			Expect(nativetask.Default().Tasks(nativetask.PhasePreBoot1)).
				To(HaveLen(1))
		})
})
