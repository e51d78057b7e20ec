package ts

import (
	"context"
	"io"
	"log"
	"math/rand"
	"slices"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"jobShop/internal/greedy"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

func twoByTwo(g *WithT) *jobshop.Instance {
	inst, err := jobshop.NewInstance(2, 2, 2, []int{3, 2, 4, 1}, []int{0, 1, 1, 0})
	g.Expect(err).NotTo(HaveOccurred())
	return inst
}

func newSolver(g *WithT, cfg Config, p greedy.Priority) *Solver {
	base, err := greedy.New(greedy.Config{Priority: p})
	g.Expect(err).NotTo(HaveOccurred())
	s, err := New(cfg, rand.New(rand.NewSource(1)), base)
	g.Expect(err).NotTo(HaveOccurred())
	s.Logger = log.New(io.Discard, "", 0)
	return s
}

func TestTabuTwoByTwo(t *testing.T) {
	g := NewWithT(t)
	s := newSolver(g, Config{MaxIterations: 10, TabuTenure: 3}, greedy.SPT)

	res, err := s.Solve(context.Background(), twoByTwo(g))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Cause).To(Equal(opt.MaxIteration))
	g.Expect(res.Iterations).To(Equal(10))
	g.Expect(res.Makespan()).To(Equal(6))
	g.Expect(res.Schedule.IsValid()).To(BeTrue())
	// 10 -> 6, затем обратный обмен запрещён до истечения срока табу
	g.Expect(res.Makespans[:3]).To(Equal([]int{10, 6, 10}))
	g.Expect(res.Meta["best_iteration"]).To(Equal(1))
}

func TestTabuReturnsBestKnownNotWorking(t *testing.T) {
	g := NewWithT(t)
	s := newSolver(g, Config{MaxIterations: 4, TabuTenure: 1}, greedy.SPT)

	res, err := s.Solve(context.Background(), twoByTwo(g))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Makespan()).To(Equal(slices.Min(res.Makespans)))
}

func TestTabuNeverWorseThanBase(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(21))
	for range 5 {
		inst := jobshop.RandomInstance(10, 5, 1, 99, rng)
		s := newSolver(g, Config{MaxIterations: 60, TabuTenure: 5, TabuTenureRand: 2}, greedy.SPT)

		res, err := s.Solve(context.Background(), inst)

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Schedule.IsValid()).To(BeTrue())
		g.Expect(res.Makespan()).To(BeNumerically("<=", res.Meta["base_makespan"]))
		g.Expect(res.Makespan()).To(Equal(slices.Min(res.Makespans)))
	}
}

func TestTabuTimeout(t *testing.T) {
	g := NewWithT(t)
	s := newSolver(g, DefaultConfig(), greedy.SPT)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, twoByTwo(g))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Cause).To(Equal(opt.Timeout))
	g.Expect(res.Makespan()).To(Equal(10))
}

func TestTabuMatrix(t *testing.T) {
	g := NewWithT(t)
	m := newTabuMatrix(4)

	m.Forbid(1, 2, 5)

	g.Expect(m.IsTabu(1, 2, 4)).To(BeTrue())
	g.Expect(m.IsTabu(2, 1, 4)).To(BeTrue())
	g.Expect(m.IsTabu(1, 2, 5)).To(BeFalse())
	g.Expect(m.IsTabu(0, 3, 0)).To(BeFalse())
}

func TestConfigValidate(t *testing.T) {
	g := NewWithT(t)
	g.Expect(DefaultConfig().Validate()).To(Succeed())
	g.Expect(Config{MaxIterations: 0, TabuTenure: 1}.Validate()).NotTo(Succeed())
	g.Expect(Config{MaxIterations: 1, TabuTenure: 0}.Validate()).NotTo(Succeed())
	g.Expect(Config{MaxIterations: 1, TabuTenure: 1, TabuTenureRand: -1}.Validate()).NotTo(Succeed())

	_, err := New(DefaultConfig(), nil, nil)
	g.Expect(err).To(HaveOccurred())
}

func TestTabuBlocked(t *testing.T) {
	g := NewWithT(t)
	// на критическом пути нет двух операций подряд на одной машине
	inst, err := jobshop.NewInstance(1, 3, 3, []int{2, 3, 4}, []int{0, 1, 2})
	g.Expect(err).NotTo(HaveOccurred())
	s := newSolver(g, DefaultConfig(), greedy.EST_LRPT)

	res, err := s.Solve(context.Background(), inst)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Cause).To(Equal(opt.Blocked))
	g.Expect(res.Iterations).To(Equal(0))
	g.Expect(res.Makespan()).To(Equal(9))
	g.Expect(res.Makespans).To(Equal([]int{9}))
}

func TestTabuAspirationOverridesTabu(t *testing.T) {
	g := NewWithT(t)
	inst := twoByTwo(g)
	s := newSolver(g, Config{MaxIterations: 1, TabuTenure: 1}, greedy.SPT)

	base, err := s.Base.Solve(context.Background(), inst)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(base.Makespan()).To(Equal(10))

	// единственный ход 10 -> 6 меняет (0,1) и (1,0) на машине 1; запрещаем его надолго
	tabu := newTabuMatrix(inst.Size())
	a := inst.ID(jobshop.Operation{Job: 0, Index: 1})
	b := inst.ID(jobshop.Operation{Job: 1, Index: 0})
	tabu.Forbid(a, b, 1000)
	g.Expect(tabu.IsTabu(a, b, 0)).To(BeTrue())

	res, err := s.search(context.Background(), inst, base, tabu, time.Now())

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Cause).To(Equal(opt.MaxIteration))
	g.Expect(res.Makespans).To(Equal([]int{10, 6}))
	g.Expect(res.Makespan()).To(Equal(6))
	g.Expect(res.Meta["best_iteration"]).To(Equal(1))
}
