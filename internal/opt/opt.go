package opt

import (
	"context"
	"time"

	"jobShop/internal/jobshop"
)

// ExitCause - причина остановки солвера. Ни одна из них не является ошибкой.
type ExitCause string

const (
	// Blocked - локальный оптимум или пустая окрестность
	Blocked ExitCause = "blocked"
	// Timeout - истёк дедлайн контекста
	Timeout ExitCause = "timeout"
	// MaxIteration - исчерпан лимит итераций
	MaxIteration ExitCause = "max_iteration"
)

// Optimizer - общий интерфейс всех солверов. Дедлайн передаётся через ctx.
type Optimizer interface {
	Solve(ctx context.Context, inst *jobshop.Instance) (Result, error)
}

type Result struct {
	Instance *jobshop.Instance
	// Schedule равен nil, только если допустимое расписание не было построено.
	Schedule *jobshop.Schedule
	Cause    ExitCause

	Evaluations int
	Iterations  int
	Duration    time.Duration
	// Makespans - значения целевой функции после каждого принятого хода.
	Makespans []int
	Meta      map[string]any
}

// Makespan возвращает -1 при отсутствии расписания.
func (r Result) Makespan() int {
	if r.Schedule == nil {
		return -1
	}
	return r.Schedule.Makespan()
}

// Expired сообщает, истёк ли дедлайн. Проверяется в начале каждой итерации.
func Expired(ctx context.Context) bool {
	return ctx.Err() != nil
}
