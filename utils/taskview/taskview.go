package taskview

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/123AnkitSharma/Taskify/models"
)

// SortKey selects the comparator used to order a task view
type SortKey string

// Sort keys
const (
	SortByCreated  SortKey = "created"
	SortByPriority SortKey = "priority"
	SortByDueDate  SortKey = "dueDate"
	SortByTitle    SortKey = "title"
)

// SortKeyFromString converts a string to a SortKey, defaulting to created
func SortKeyFromString(key string) SortKey {
	switch key {
	case "priority":
		return SortByPriority
	case "dueDate", "due_date":
		return SortByDueDate
	case "title":
		return SortByTitle
	default:
		return SortByCreated
	}
}

// Status filter sentinels
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Sort orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ViewSpec describes one derived presentation of a task set: which tasks to
// keep and how to order them. Zero values ("", "all") leave a filter off.
type ViewSpec struct {
	Status    string
	Priority  string
	Search    string
	SortBy    SortKey
	SortOrder string
}

// Tasks with no due date sort as if due on the maximum representable date,
// so they land last ascending and first descending.
var maxDueDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// ApplyView filters then sorts tasks according to spec, returning a new slice.
// The input slice is never modified. Sorting is stable with respect to ties.
func ApplyView(tasks []models.Task, spec ViewSpec) []models.Task {
	filtered := Filter(tasks, spec)
	Sort(filtered, spec.SortBy, spec.SortOrder)
	return filtered
}

// Filter narrows tasks by status, priority and title search, in that order.
// The result is a freshly allocated slice.
func Filter(tasks []models.Task, spec ViewSpec) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	filtered = append(filtered, tasks...)

	switch spec.Status {
	case StatusCompleted:
		filtered = keep(filtered, func(t models.Task) bool { return t.Completed })
	case StatusActive:
		filtered = keep(filtered, func(t models.Task) bool { return !t.Completed })
	}

	if spec.Priority != "" && spec.Priority != "all" {
		filtered = keep(filtered, func(t models.Task) bool {
			return string(t.Priority) == spec.Priority
		})
	}

	if search := strings.TrimSpace(spec.Search); search != "" {
		searchLower := strings.ToLower(search)
		filtered = keep(filtered, func(t models.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), searchLower)
		})
	}

	return filtered
}

func keep(tasks []models.Task, predicate func(models.Task) bool) []models.Task {
	kept := tasks[:0]
	for _, task := range tasks {
		if predicate(task) {
			kept = append(kept, task)
		}
	}
	return kept
}

// Sort orders tasks in place by the given key. Order defaults to descending.
func Sort(tasks []models.Task, sortBy SortKey, sortOrder string) {
	less := lessFunc(sortBy)

	sort.SliceStable(tasks, func(i, j int) bool {
		if sortOrder == OrderAsc {
			return less(tasks[i], tasks[j])
		}
		return less(tasks[j], tasks[i])
	})
}

func lessFunc(sortBy SortKey) func(a, b models.Task) bool {
	switch sortBy {
	case SortByPriority:
		return func(a, b models.Task) bool {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
	case SortByDueDate:
		return func(a, b models.Task) bool {
			return dueDateOrMax(a).Before(dueDateOrMax(b))
		}
	case SortByTitle:
		return func(a, b models.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return func(a, b models.Task) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}

func dueDateOrMax(t models.Task) time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return maxDueDate
}

// PriorityStats holds per-priority task counts
type PriorityStats struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Stats summarizes a task set for the dashboard
type Stats struct {
	Total          int           `json:"total"`
	Completed      int           `json:"completed"`
	Active         int           `json:"active"`
	Overdue        int           `json:"overdue"`
	CompletionRate int           `json:"completion_rate"`
	PriorityStats  PriorityStats `json:"priority_stats"`
}

// ComputeStats derives summary statistics from a task set. A task is overdue
// when it is not completed and its due date lies before the instant of call.
func ComputeStats(tasks []models.Task) Stats {
	stats := Stats{Total: len(tasks)}
	now := time.Now()

	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
		if !task.Completed && task.DueDate != nil && task.DueDate.Before(now) {
			stats.Overdue++
		}

		switch task.Priority {
		case models.PriorityHigh:
			stats.PriorityStats.High++
		case models.PriorityMedium:
			stats.PriorityStats.Medium++
		case models.PriorityLow:
			stats.PriorityStats.Low++
		}
	}

	stats.Active = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats
}
