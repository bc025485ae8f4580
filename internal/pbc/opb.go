package pbc

import (
	"fmt"
	"strings"
)

// ToOPB serializes the model into the OPB text format consumed by
// pseudo-boolean solvers. OPB only supports ">=" and "=", so LessOrEqual
// constraints are negated, and the maximization objective becomes a "min:"
// line with negated weights.
func (m Model) ToOPB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", m.Variables, len(m.Constraints))

	if len(m.Objective) > 0 {
		builder.WriteString("min:")
		for _, t := range m.Objective {
			if t.Weight == 0 {
				continue
			}
			fmt.Fprintf(&builder, " %+d x%d", -t.Weight, t.Var)
		}
		builder.WriteString(" ;\n")
	}

	for _, c := range m.Constraints {
		sign, relation, bound := 1, ">=", c.Bound
		if c.Rel == LessOrEqual {
			sign, bound = -1, -c.Bound
		} else if c.Rel == Equal {
			relation = "="
		}
		for i, v := range c.Vars {
			weight := 1
			if c.Weights != nil {
				weight = c.Weights[i]
			}
			fmt.Fprintf(&builder, "%+d x%d ", sign*weight, v)
		}
		fmt.Fprintf(&builder, "%s %d ;\n", relation, bound)
	}

	return builder.String()
}
