package stats

import (
	"fmt"
	"strings"
)

// Format renders the summary as a plain text report.
func Format(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks      %d total • %d completed • %d left • %d%% completion\n",
		s.TotalTasks, s.CompletedTasks, s.TasksLeft, s.CompletionRate)
	fmt.Fprintf(&b, "Goals      %d total • %d completed • %d%% progress\n",
		s.TotalGoals, s.CompletedGoals, s.GoalProgress)
	fmt.Fprintf(&b, "Notes      %d\n", s.TotalNotes)
	if d := s.MostProductiveDay; d != nil {
		fmt.Fprintf(&b, "Best day   %s (%d tasks)\n", d.Label, d.Count)
	} else {
		b.WriteString("Best day   - (no data)\n")
	}

	b.WriteString("\nLast 7 days\n")
	for _, d := range s.Last7Days {
		fmt.Fprintf(&b, "  %-7s %s %d\n", d.Label, strings.Repeat("■", d.Count), d.Count)
	}

	if len(s.Categories) > 0 {
		b.WriteString("\nBy category\n")
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "  %-12s %d\n", c.Name, c.Count)
		}
	}

	if len(s.GoalsBreakdown) > 0 {
		b.WriteString("\nGoals by tier\n")
		for _, t := range s.GoalsBreakdown {
			fmt.Fprintf(&b, "  %-10s %d/%d\n", t.Tier.Label(), t.Completed, t.Total)
		}
	}

	b.WriteString("\nUpcoming deadlines\n")
	if len(s.UpcomingDeadlines) == 0 {
		b.WriteString("  No upcoming deadlines\n")
	}
	for _, t := range s.UpcomingDeadlines {
		fmt.Fprintf(&b, "  %s - Due: %s\n", t.Title, t.DueDate)
	}

	b.WriteString("\nProgress reminders\n")
	if len(s.ProgressReminders) == 0 {
		b.WriteString("  No progress reminders\n")
	}
	for _, g := range s.ProgressReminders {
		fmt.Fprintf(&b, "  %s\n", g.Text)
	}

	b.WriteString("\nInsights\n")
	if len(s.Insights) == 0 {
		b.WriteString("  No data available yet. Start adding tasks and goals!\n")
	}
	for _, in := range s.Insights {
		mark := "+"
		if in.Warning {
			mark = "!"
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", mark, in.Label, in.Message)
	}
	return b.String()
}
