// Package stats derives read-only dashboard metrics from the stored
// tasks, goals and notes.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"lockin/internal/entity"
)

const (
	historyDays    = 7
	upcomingLimit  = 5
	reminderLimit  = 5
	backlogWarning = 10
)

type DayCount struct {
	Date  string
	Label string
	Count int
}

type Category struct {
	Name  string
	Count int
}

type TierCount struct {
	Tier      entity.Tier
	Total     int
	Completed int
}

type Insight struct {
	Warning bool
	Label   string
	Message string
}

type Summary struct {
	TotalTasks     int
	CompletedTasks int
	TasksLeft      int
	CompletionRate int

	TotalGoals     int
	CompletedGoals int
	GoalProgress   int

	TotalNotes int

	// MostProductiveDay is nil when no completed task has a due date.
	MostProductiveDay *DayCount
	Last7Days         []DayCount
	Categories        []Category
	GoalsBreakdown    []TierCount

	UpcomingDeadlines []entity.Task
	ProgressReminders []entity.Goal
	Insights          []Insight
}

// Compute builds the summary as of now.
func Compute(tasks []entity.Task, goals entity.Goals, notes []entity.Note, now time.Time) Summary {
	s := Summary{TotalTasks: len(tasks), TotalNotes: len(notes)}
	for _, t := range tasks {
		if done(t) {
			s.CompletedTasks++
		}
	}
	s.TasksLeft = s.TotalTasks - s.CompletedTasks
	s.CompletionRate = percent(s.CompletedTasks, s.TotalTasks)

	for _, tier := range entity.Tiers() {
		list := goals[tier]
		tc := TierCount{Tier: tier, Total: len(list)}
		for _, g := range list {
			if g.Completed {
				tc.Completed++
			}
		}
		s.TotalGoals += tc.Total
		s.CompletedGoals += tc.Completed
		if tc.Total > 0 {
			s.GoalsBreakdown = append(s.GoalsBreakdown, tc)
		}
	}
	s.GoalProgress = percent(s.CompletedGoals, s.TotalGoals)

	s.MostProductiveDay = mostProductiveDay(tasks)
	s.Last7Days = lastDays(tasks, now, historyDays)
	s.Categories = categories(tasks)
	s.UpcomingDeadlines = upcoming(tasks, now, upcomingLimit)
	s.ProgressReminders = reminders(goals, reminderLimit)
	s.Insights = insights(s)
	return s
}

func done(t entity.Task) bool {
	return t.Completed || t.Progress == entity.ProgressCompleted
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// mostProductiveDay counts completed tasks per weekday of their due
// date. Ties go to the weekday encountered first in stored order.
func mostProductiveDay(tasks []entity.Task) *DayCount {
	counts := map[string]int{}
	var order []string
	for _, t := range tasks {
		if !done(t) {
			continue
		}
		due, ok := t.Due()
		if !ok {
			continue
		}
		day := due.Weekday().String()
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, day := range order[1:] {
		if counts[day] > counts[best] {
			best = day
		}
	}
	return &DayCount{Label: best, Count: counts[best]}
}

// lastDays returns one bucket per calendar day ending today, oldest
// first, counting completed tasks due that day.
func lastDays(tasks []entity.Task, now time.Time, n int) []DayCount {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]DayCount, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, i-(n-1))
		key := entity.FormatDate(d)
		days[i] = DayCount{Date: key, Label: d.Format("Jan 2")}
		index[key] = i
	}
	for _, t := range tasks {
		if !done(t) {
			continue
		}
		if i, ok := index[t.DueDate]; ok {
			days[i].Count++
		}
	}
	return days
}

func categories(tasks []entity.Task) []Category {
	var out []Category
	pos := map[string]int{}
	for _, t := range tasks {
		name := t.Type
		if name == "" {
			name = "Other"
		}
		i, ok := pos[name]
		if !ok {
			i = len(out)
			pos[name] = i
			out = append(out, Category{Name: name})
		}
		out[i].Count++
	}
	return out
}

// upcoming returns open tasks due after today, soonest first.
func upcoming(tasks []entity.Task, now time.Time, limit int) []entity.Task {
	today := entity.FormatDate(now)
	var out []entity.Task
	for _, t := range tasks {
		if done(t) {
			continue
		}
		if _, ok := t.Due(); ok && t.DueDate > today {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func reminders(goals entity.Goals, limit int) []entity.Goal {
	var out []entity.Goal
	for _, g := range goals.All() {
		if g.Completed {
			continue
		}
		out = append(out, g)
		if len(out) == limit {
			break
		}
	}
	return out
}

func insights(s Summary) []Insight {
	var out []Insight
	switch {
	case s.CompletionRate >= 80:
		out = append(out, Insight{Label: "Excellent completion rate",
			Message: fmt.Sprintf("You've completed %d%% of your tasks. Keep up the great work!", s.CompletionRate)})
	case s.CompletionRate >= 50:
		out = append(out, Insight{Label: "Good progress",
			Message: fmt.Sprintf("You're at a %d%% completion rate. Keep pushing!", s.CompletionRate)})
	case s.CompletionRate > 0:
		out = append(out, Insight{Warning: true, Label: "Low completion rate",
			Message: fmt.Sprintf("Only %d%% of tasks are completed. Try breaking them into smaller steps!", s.CompletionRate)})
	}

	if s.TasksLeft > backlogWarning {
		out = append(out, Insight{Warning: true, Label: "Large task backlog",
			Message: fmt.Sprintf("You have %d incomplete tasks. Consider prioritizing the most important ones.", s.TasksLeft)})
	}

	if s.GoalProgress >= 75 {
		out = append(out, Insight{Label: "Goal crushing",
			Message: fmt.Sprintf("%d out of %d goals completed! %d%% done.", s.CompletedGoals, s.TotalGoals, s.GoalProgress)})
	} else if s.TotalGoals > 0 {
		out = append(out, Insight{Label: "Goals in progress",
			Message: fmt.Sprintf("%d out of %d goals completed. %d%% done.", s.CompletedGoals, s.TotalGoals, s.GoalProgress)})
	}

	if d := s.MostProductiveDay; d != nil {
		out = append(out, Insight{Label: "Most productive day",
			Message: fmt.Sprintf("Your most productive day is %s with %d tasks completed.", d.Label, d.Count)})
	}

	if s.CompletedTasks > 0 {
		out = append(out, Insight{Label: "Daily average",
			Message: fmt.Sprintf("You average %.1f tasks completed per day.", float64(s.CompletedTasks)/historyDays)})
	}
	return out
}
