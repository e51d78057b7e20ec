package neighborhood

import (
	"fmt"
	"log"

	"github.com/samber/lo"

	"jobShop/internal/jobshop"
)

// Block - максимальный участок критического пути на одной машине.
// First и Last - позиции в последовательности машины.
type Block struct {
	Machine int
	First   int
	Last    int
}

func (b Block) Len() int {
	return b.Last - b.First + 1
}

func (b Block) String() string {
	return fmt.Sprintf("machine %d [%d..%d]", b.Machine, b.First, b.Last)
}

// Swap - обмен двух операций на одной машине. Применённый дважды,
// возвращает порядок в исходное состояние.
type Swap struct {
	Machine int
	First   int
	Second  int
}

func (s Swap) Apply(ro *jobshop.ResourceOrder) error {
	return ro.Swap(s.Machine, s.First, s.Second)
}

func (s Swap) Undo(ro *jobshop.ResourceOrder) error {
	return ro.Swap(s.Machine, s.First, s.Second)
}

// Operations возвращает пару операций, которые переставляет ход.
func (s Swap) Operations(ro *jobshop.ResourceOrder) (jobshop.Operation, jobshop.Operation, bool) {
	a, okA := ro.TaskAt(s.Machine, s.First)
	b, okB := ro.TaskAt(s.Machine, s.Second)
	return a, b, okA && okB
}

func (s Swap) String() string {
	return fmt.Sprintf("swap machine %d (%d,%d)", s.Machine, s.First, s.Second)
}

// Nowicki - окрестность Новицкого-Смутницкого: для каждого блока
// критического пути меняются местами первые две и последние две операции.
type Nowicki struct {
	inst   *jobshop.Instance
	eval   *jobshop.Evaluator
	Logger *log.Logger

	// Rejected - число ходов, отброшенных из-за недопустимого порядка.
	Rejected int
	// Evaluations - число пересчётов расписания при проверке ходов.
	Evaluations int
}

func NewNowicki(inst *jobshop.Instance) (*Nowicki, error) {
	eval, err := jobshop.NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	return &Nowicki{inst: inst, eval: eval}, nil
}

func (n *Nowicki) logger() *log.Logger {
	if n.Logger == nil {
		return log.Default()
	}
	return n.Logger
}

// BlocksOfCriticalPath разбивает критический путь на блоки длины >= 2.
func (n *Nowicki) BlocksOfCriticalPath(ro *jobshop.ResourceOrder) ([]Block, error) {
	s, ok := n.eval.Schedule(ro)
	if !ok {
		return nil, jobshop.ErrInfeasible
	}
	path := s.CriticalPath()

	var blocks []Block
	start := 0
	for i := 1; i <= len(path); i++ {
		if i < len(path) && n.inst.MachineOf(path[i]) == n.inst.MachineOf(path[start]) {
			continue
		}
		// Блок из одной операции не даёт ходов
		if i-start >= 2 {
			m := n.inst.MachineOf(path[start])
			blocks = append(blocks, Block{
				Machine: m,
				First:   ro.Position(m, path[start]),
				Last:    ro.Position(m, path[i-1]),
			})
		}
		start = i
	}
	return blocks, nil
}

// Neighbors возвращает допустимые ходы для одного блока.
func (n *Nowicki) Neighbors(block Block, ro *jobshop.ResourceOrder) []Swap {
	var candidates []Swap
	switch {
	case block.Len() < 2:
		return nil
	case block.Len() == 2:
		candidates = []Swap{{Machine: block.Machine, First: block.First, Second: block.Last}}
	default:
		candidates = []Swap{
			{Machine: block.Machine, First: block.First, Second: block.First + 1},
			{Machine: block.Machine, First: block.Last - 1, Second: block.Last},
		}
	}

	var swaps []Swap
	for _, swap := range candidates {
		if n.feasible(swap, ro) {
			swaps = append(swaps, swap)
		}
	}
	return swaps
}

func (n *Nowicki) feasible(swap Swap, ro *jobshop.ResourceOrder) bool {
	_, ok, err := Evaluate(n.eval, ro, swap)
	n.Evaluations++
	switch {
	case err != nil:
		n.Rejected++
		n.logger().Printf("ход %v отброшен: %v", swap, err)
	case !ok:
		n.Rejected++
		n.logger().Printf("ход %v даёт недопустимый порядок, отброшен", swap)
	}
	return err == nil && ok
}

// Evaluate применяет ход, считает makespan и откатывает ход при любом исходе.
// ok == false означает, что порядок после хода недопустим.
func Evaluate(eval *jobshop.Evaluator, ro *jobshop.ResourceOrder, swap Swap) (makespan int, ok bool, err error) {
	if err := swap.Apply(ro); err != nil {
		return 0, false, err
	}
	defer func() {
		if undoErr := swap.Undo(ro); undoErr != nil && err == nil {
			err = undoErr
		}
	}()
	makespan, ok = eval.Makespan(ro)
	return makespan, ok, nil
}

// Generate собирает ходы всех блоков в порядке их обнаружения.
func (n *Nowicki) Generate(ro *jobshop.ResourceOrder) ([]Swap, error) {
	blocks, err := n.BlocksOfCriticalPath(ro)
	if err != nil {
		return nil, err
	}
	return lo.FlatMap(blocks, func(block Block, _ int) []Swap {
		return n.Neighbors(block, ro)
	}), nil
}
