package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/gantt"
	"github.com/syampillai/sochart/pkg/manifest"
	"github.com/syampillai/sochart/pkg/part"
)

// newScheduleCmd creates the 'schedule' command for inspecting computed
// schedules without emitting an option document.
func newScheduleCmd() *cobra.Command {
	var deps bool

	cmd := &cobra.Command{
		Use:   "schedule <manifest.toml>",
		Short: "Compute and display the task schedule of a manifest",
		Long: `Compute the schedule of a manifest and print it as a table.

Constraints are resolved the same way 'emit' resolves them: every task
starts no earlier than the project start, its group's earliest start and
the end of each predecessor. Groups derive their span from their members.

Examples:
  sochart schedule plan.toml
  sochart schedule plan.toml --deps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			p, _, err := m.Build(part.NewRegistry())
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			if err := p.ValidateConstraints(); err != nil {
				return err
			}
			prog.done("Schedule computed")

			if m.Title != "" {
				fmt.Println(StyleTitle.Render(m.Title))
				fmt.Println()
			}
			printSchedule(p)
			if deps {
				fmt.Println()
				printDependencies(p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deps, "deps", false, "also list the dependency edges")
	return cmd
}

// printSchedule renders the groups and tasks in display order.
func printSchedule(p *gantt.Project) {
	layout := data.TimeFormat
	if p.Unit().DateBased() {
		layout = data.DateFormat
	}
	span := func(start, end time.Time) string {
		return start.Format(layout) + "  " + iconArrow + "  " + end.Format(layout)
	}

	for _, g := range p.Groups() {
		fmt.Printf("%s  %s  %s\n",
			styleGroupRow.Render(g.Name()),
			StyleDim.Render(span(g.Start(), g.End())),
			StyleValue.Render(fmt.Sprintf("%.0f%%", g.Completion())))
		for _, t := range p.Tasks(g) {
			name := "  " + t.Name()
			if t.Milestone() {
				name = "  " + StyleMilestone.Render("◆ "+t.Name())
			}
			fmt.Printf("%-28s  %s  %s\n",
				name,
				StyleDim.Render(span(t.Start(), t.End())),
				StyleValue.Render(fmt.Sprintf("%.0f%%", t.Completion())))
		}
	}
}

// printDependencies lists the dependency edges after pruning.
func printDependencies(p *gantt.Project) {
	edges := p.Dependencies()
	if len(edges) == 0 {
		printInfo("no dependencies")
		return
	}
	fmt.Println(StyleTitle.Render("Dependencies"))
	for _, d := range edges {
		printDetail("%s %s %s", d.Predecessor.Name(), iconArrow, d.Dependent.Name())
	}
}
