package instances

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"jobShop/internal/jobshop"
)

// Step is one (machine, duration) pair of a job's route.
type Step struct {
	Machine  int `yaml:"machine"`
	Duration int `yaml:"duration"`
}

// Document is the YAML form of an instance.
type Document struct {
	Name     string   `yaml:"name"`
	Machines int      `yaml:"machines"`
	Jobs     [][]Step `yaml:"jobs"`
}

// LoadFile picks the format by extension: .yaml/.yml, anything else is text.
func LoadFile(path string) (*jobshop.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseText(f)
	}
}

// ParseText reads the JSPLIB layout: '#' comments, a "jobs machines" header,
// then one line per job of "machine duration" pairs.
func ParseText(r io.Reader) (*jobshop.Instance, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var parseErr error
		row := lo.Map(fields, func(field string, _ int) int {
			v, err := strconv.Atoi(field)
			if err != nil && parseErr == nil {
				parseErr = fmt.Errorf("line %d: %w", lineNo, err)
			}
			return v
		})
		if parseErr != nil {
			return nil, parseErr
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instance: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty instance")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header must be \"jobs machines\" (got %v)", header)
	}
	jobs, machines := header[0], header[1]
	if len(rows)-1 != jobs {
		return nil, fmt.Errorf("expected %d job lines (got %d)", jobs, len(rows)-1)
	}

	doc := Document{Machines: machines}
	for j, row := range rows[1:] {
		if len(row)%2 != 0 {
			return nil, fmt.Errorf("job %d: odd number of fields", j)
		}
		doc.Jobs = append(doc.Jobs, lo.Map(lo.Chunk(row, 2), func(pair []int, _ int) Step {
			return Step{Machine: pair[0], Duration: pair[1]}
		}))
	}
	return doc.Instance()
}

func ParseYAML(r io.Reader) (*jobshop.Instance, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse instance YAML: %w", err)
	}
	return doc.Instance()
}

// Instance requires every job to have the same number of operations.
func (d Document) Instance() (*jobshop.Instance, error) {
	if len(d.Jobs) == 0 {
		return nil, fmt.Errorf("instance has no jobs")
	}
	tasks := len(d.Jobs[0])
	durations := make([]int, 0, len(d.Jobs)*tasks)
	assignments := make([]int, 0, len(d.Jobs)*tasks)
	for j, route := range d.Jobs {
		if len(route) != tasks {
			return nil, fmt.Errorf("job %d has %d operations, expected %d", j, len(route), tasks)
		}
		for _, step := range route {
			durations = append(durations, step.Duration)
			assignments = append(assignments, step.Machine)
		}
	}
	return jobshop.NewInstance(len(d.Jobs), d.Machines, tasks, durations, assignments)
}

// FromInstance is the inverse of Document.Instance.
func FromInstance(name string, inst *jobshop.Instance) Document {
	doc := Document{Name: name, Machines: inst.Machines}
	for j := 0; j < inst.Jobs; j++ {
		doc.Jobs = append(doc.Jobs, lo.Times(inst.Tasks, func(i int) Step {
			return Step{Machine: inst.Machine(j, i), Duration: inst.Duration(j, i)}
		}))
	}
	return doc
}

// WriteText writes the instance in the layout ParseText reads.
func WriteText(w io.Writer, inst *jobshop.Instance) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", inst.Jobs, inst.Machines); err != nil {
		return err
	}
	for j := 0; j < inst.Jobs; j++ {
		fields := lo.FlatMap(lo.Range(inst.Tasks), func(i int, _ int) []string {
			return []string{strconv.Itoa(inst.Machine(j, i)), strconv.Itoa(inst.Duration(j, i))}
		})
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}
