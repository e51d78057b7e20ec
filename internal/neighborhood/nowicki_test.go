package neighborhood

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"jobShop/internal/jobshop"
)

func twoByTwo(g *WithT) (*jobshop.Instance, *jobshop.ResourceOrder) {
	inst, err := jobshop.NewInstance(2, 2, 2, []int{3, 2, 4, 1}, []int{0, 1, 1, 0})
	g.Expect(err).NotTo(HaveOccurred())
	ro, err := jobshop.NewResourceOrder(inst)
	g.Expect(err).NotTo(HaveOccurred())
	for _, op := range []jobshop.Operation{{Job: 0, Index: 0}, {Job: 1, Index: 1}, {Job: 1, Index: 0}, {Job: 0, Index: 1}} {
		g.Expect(ro.Add(op)).To(Succeed())
	}
	return inst, ro
}

func quiet(n *Nowicki) *Nowicki {
	n.Logger = log.New(io.Discard, "", 0)
	return n
}

func TestBlocksOfTwoByTwo(t *testing.T) {
	g := NewWithT(t)
	inst, ro := twoByTwo(g)
	n, err := NewNowicki(inst)
	g.Expect(err).NotTo(HaveOccurred())

	blocks, err := n.BlocksOfCriticalPath(ro)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(blocks).To(Equal([]Block{{Machine: 1, First: 0, Last: 1}}))
}

func TestGenerateTwoByTwo(t *testing.T) {
	g := NewWithT(t)
	inst, ro := twoByTwo(g)
	n, err := NewNowicki(inst)
	g.Expect(err).NotTo(HaveOccurred())
	before := ro.Copy()

	swaps, err := n.Generate(ro)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(swaps).To(Equal([]Swap{{Machine: 1, First: 0, Second: 1}}))
	g.Expect(ro.Equal(before)).To(BeTrue())

	eval, err := jobshop.NewEvaluator(inst)
	g.Expect(err).NotTo(HaveOccurred())
	ms, ok, err := Evaluate(eval, ro, swaps[0])
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	g.Expect(ms).To(Equal(10))
	g.Expect(ro.Equal(before)).To(BeTrue())
}

func TestNeighborsOfLongBlock(t *testing.T) {
	g := NewWithT(t)
	// Три работы по одной операции на единственной машине: весь путь - один блок.
	inst, err := jobshop.NewInstance(3, 1, 1, []int{2, 3, 4}, []int{0, 0, 0})
	g.Expect(err).NotTo(HaveOccurred())
	ro, err := jobshop.NewJobNumbers(inst).ToResourceOrder(inst)
	g.Expect(err).NotTo(HaveOccurred())
	n := quiet(must(NewNowicki(inst)))

	blocks, err := n.BlocksOfCriticalPath(ro)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(blocks).To(HaveLen(1))
	g.Expect(blocks[0].Len()).To(Equal(3))

	swaps := n.Neighbors(blocks[0], ro)
	g.Expect(swaps).To(Equal([]Swap{
		{Machine: 0, First: 0, Second: 1},
		{Machine: 0, First: 1, Second: 2},
	}))
	g.Expect(n.Neighbors(Block{Machine: 0, First: 1, Last: 1}, ro)).To(BeEmpty())
}

func TestGenerateOnInfeasibleOrder(t *testing.T) {
	g := NewWithT(t)
	inst, err := jobshop.NewInstance(2, 2, 2, []int{3, 2, 4, 1}, []int{0, 1, 1, 0})
	g.Expect(err).NotTo(HaveOccurred())
	ro, err := jobshop.NewResourceOrder(inst)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ro.AddToMachine(0, jobshop.Operation{Job: 1, Index: 1})).To(Succeed())
	g.Expect(ro.AddToMachine(0, jobshop.Operation{Job: 0, Index: 0})).To(Succeed())
	g.Expect(ro.AddToMachine(1, jobshop.Operation{Job: 0, Index: 1})).To(Succeed())
	g.Expect(ro.AddToMachine(1, jobshop.Operation{Job: 1, Index: 0})).To(Succeed())

	_, err = must(NewNowicki(inst)).Generate(ro)
	g.Expect(err).To(MatchError(jobshop.ErrInfeasible))
}

func TestGeneratedSwapsKeepOrderIntact(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(5))
	for range 10 {
		inst := jobshop.RandomInstance(8, 5, 1, 40, rng)
		jn := jobshop.NewJobNumbers(inst)
		rng.Shuffle(len(jn), func(i, j int) { jn[i], jn[j] = jn[j], jn[i] })
		ro, err := jn.ToResourceOrder(inst)
		g.Expect(err).NotTo(HaveOccurred())
		before := ro.Copy()
		n := quiet(must(NewNowicki(inst)))

		swaps, err := n.Generate(ro)

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ro.Equal(before)).To(BeTrue())
		for _, swap := range swaps {
			g.Expect(swap.Second).To(Equal(swap.First + 1))
			a, b, ok := swap.Operations(ro)
			g.Expect(ok).To(BeTrue())
			g.Expect(inst.MachineOf(a)).To(Equal(swap.Machine))
			g.Expect(inst.MachineOf(b)).To(Equal(swap.Machine))
		}
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestGenerateRejectsInfeasibleSwap(t *testing.T) {
	g := NewWithT(t)
	// одна работа дважды проходит через одну машину: обмен нарушает порядок работы
	inst, err := jobshop.NewInstance(1, 1, 2, []int{2, 3}, []int{0, 0})
	g.Expect(err).NotTo(HaveOccurred())
	ro, err := jobshop.NewResourceOrder(inst)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ro.Add(jobshop.Operation{Job: 0, Index: 0})).To(Succeed())
	g.Expect(ro.Add(jobshop.Operation{Job: 0, Index: 1})).To(Succeed())

	n, err := NewNowicki(inst)
	g.Expect(err).NotTo(HaveOccurred())
	var out bytes.Buffer
	n.Logger = log.New(&out, "", 0)

	blocks, err := n.BlocksOfCriticalPath(ro)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(blocks).To(Equal([]Block{{Machine: 0, First: 0, Last: 1}}))

	swaps, err := n.Generate(ro)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(swaps).To(BeEmpty())
	g.Expect(n.Rejected).To(Equal(1))
	g.Expect(n.Evaluations).To(Equal(1))
	g.Expect(out.String()).To(ContainSubstring("недопустимый порядок"))

	// исходный порядок не изменился
	op, ok := ro.TaskAt(0, 0)
	g.Expect(ok).To(BeTrue())
	g.Expect(op).To(Equal(jobshop.Operation{Job: 0, Index: 0}))
}
