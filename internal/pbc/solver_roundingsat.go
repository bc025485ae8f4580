package pbc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const roundingsatPath = "roundingsat"

// roundingsatSolver delegates to the roundingsat binary: the model is fed as
// OPB text on standard input and the competition-style output ("s" status
// line, "v" value line) is parsed back. Exit codes 10, 20 and 30 stand for
// satisfiable, unsatisfiable and optimum found.
type roundingsatSolver struct{}

func NewRoundingsatSolver() Solver {
	return &roundingsatSolver{}
}

func (rs *roundingsatSolver) Solve(ctx context.Context, m Model) (Solution, error) {
	if err := m.Validate(); err != nil {
		return Solution{Status: StatusInvalid}, err
	}
	if m.Variables == 0 {
		return Solution{Status: StatusOptimal, Values: []bool{}}, nil
	}

	cmd := exec.CommandContext(ctx, roundingsatPath)
	cmd.Stdin = strings.NewReader(m.ToOPB())

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return Solution{Status: StatusUnknown}, nil
	}
	if err != nil && !lo.Contains([]int{10, 20, 30}, cmd.ProcessState.ExitCode()) {
		return Solution{}, fmt.Errorf("roundingsat execution failed: %v : %v", err, stderr.String())
	}

	return parseOutput(stdout.String(), m)
}

func parseOutput(output string, m Model) (Solution, error) {
	lines := strings.Split(output, "\n")
	statusLine, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "s ") })
	if !ok {
		return Solution{Status: StatusUnknown}, nil
	}

	var status Status
	switch strings.TrimSpace(statusLine[2:]) {
	case "OPTIMUM FOUND":
		status = StatusOptimal
	case "SATISFIABLE":
		status = StatusFeasible
	case "UNSATISFIABLE":
		return Solution{Status: StatusInfeasible}, nil
	default:
		return Solution{Status: StatusUnknown}, nil
	}

	valueLine, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "v ") })
	if !ok {
		return Solution{}, fmt.Errorf("roundingsat reported %v but emitted no value line", status)
	}

	values := make([]bool, m.Variables)
	for _, token := range strings.Fields(valueLine[2:]) {
		literal := token
		truth := true
		if strings.HasPrefix(literal, "-") {
			literal, truth = literal[1:], false
		}
		variable, err := strconv.Atoi(strings.TrimPrefix(literal, "x"))
		if err != nil || variable < 1 {
			return Solution{}, fmt.Errorf("invalid literal %q in roundingsat output", token)
		}
		if variable <= m.Variables {
			values[variable-1] = truth
		}
	}

	return Solution{Status: status, Values: values, Objective: m.Evaluate(values)}, nil
}
