package commands

import (
	"fmt"
	"io"

	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// RunRules lists the rules of registry grouped by category.
func RunRules(registry *verify.RuleRegistry, w io.Writer) {
	for _, cat := range registry.Categories() {
		fmt.Fprintf(w, "%s:\n", cat)
		for _, r := range registry.RulesByCategory(cat) {
			state := ""
			if !registry.IsEnabled(r.ID()) {
				state = " (disabled)"
			}
			fmt.Fprintf(w, "  %-38s %-6s %s%s\n", r.ID(), r.Stage(), r.Name(), state)
		}
	}
	fmt.Fprintf(w, "\n%d rules, %d enabled\n", registry.Count(), registry.EnabledCount())
}
