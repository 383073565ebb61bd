package taskview

import (
	"testing"
	"time"

	"github.com/123AnkitSharma/Taskify/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeTask(title string, priority models.Priority, completed bool, dueDate *time.Time, createdAt time.Time) models.Task {
	return models.Task{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     title,
		Priority:  priority,
		Completed: completed,
		DueDate:   dueDate,
		CreatedAt: createdAt,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func sampleTasks() []models.Task {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	return []models.Task{
		makeTask("Buy milk", models.PriorityLow, false, datePtr(2025, time.March, 10), base),
		makeTask("Read book", models.PriorityMedium, true, nil, base.Add(time.Hour)),
		makeTask("Write report", models.PriorityHigh, false, datePtr(2025, time.March, 5), base.Add(2*time.Hour)),
	}
}

func TestApplyViewNoFiltersIsPermutation(t *testing.T) {
	tasks := sampleTasks()
	spec := ViewSpec{Status: StatusAll, Priority: "all", Search: ""}

	result := ApplyView(tasks, spec)

	assert.Len(t, result, len(tasks))
	seen := make(map[uuid.UUID]bool)
	for _, task := range result {
		seen[task.ID] = true
	}
	for _, task := range tasks {
		assert.True(t, seen[task.ID])
	}
}

func TestApplyViewDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	originalTitles := []string{tasks[0].Title, tasks[1].Title, tasks[2].Title}

	ApplyView(tasks, ViewSpec{SortBy: SortByTitle, SortOrder: OrderAsc})

	for i, title := range originalTitles {
		assert.Equal(t, title, tasks[i].Title)
	}
}

func TestFilterByStatus(t *testing.T) {
	tasks := sampleTasks()

	completed := Filter(tasks, ViewSpec{Status: StatusCompleted})
	assert.Len(t, completed, 1)
	assert.Equal(t, "Read book", completed[0].Title)

	active := Filter(tasks, ViewSpec{Status: StatusActive})
	assert.Len(t, active, 2)
}

func TestFilterByPriority(t *testing.T) {
	tasks := sampleTasks()

	high := Filter(tasks, ViewSpec{Priority: "High"})
	assert.Len(t, high, 1)
	assert.Equal(t, "Write report", high[0].Title)

	all := Filter(tasks, ViewSpec{Priority: "all"})
	assert.Len(t, all, 3)
}

func TestSearchIsCaseInsensitiveSubstringOnTitle(t *testing.T) {
	tasks := sampleTasks()

	result := Filter(tasks, ViewSpec{Search: "MILK"})
	assert.Len(t, result, 1)
	assert.Equal(t, "Buy milk", result[0].Title)

	result = Filter(tasks, ViewSpec{Search: "bo"})
	assert.Len(t, result, 1)
	assert.Equal(t, "Read book", result[0].Title)

	// Whitespace-only search is a no-op
	result = Filter(tasks, ViewSpec{Search: "   "})
	assert.Len(t, result, 3)
}

func TestSearchDoesNotMatchDescription(t *testing.T) {
	tasks := sampleTasks()
	tasks[2].Description = "remember the milk"

	result := Filter(tasks, ViewSpec{Search: "milk"})
	assert.Len(t, result, 1)
	assert.Equal(t, "Buy milk", result[0].Title)
}

func TestSortByPriority(t *testing.T) {
	tasks := sampleTasks()

	Sort(tasks, SortByPriority, OrderDesc)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, models.PriorityLow, tasks[2].Priority)

	Sort(tasks, SortByPriority, OrderAsc)
	assert.Equal(t, models.PriorityLow, tasks[0].Priority)
	assert.Equal(t, models.PriorityHigh, tasks[2].Priority)
}

func TestSortByDueDateMissingDatesSortLast(t *testing.T) {
	base := time.Now()
	tasks := []models.Task{
		makeTask("no date 1", models.PriorityHigh, false, nil, base),
		makeTask("due soon", models.PriorityLow, false, datePtr(2025, time.January, 2), base),
		makeTask("no date 2", models.PriorityMedium, true, nil, base),
		makeTask("due later", models.PriorityLow, false, datePtr(2025, time.June, 30), base),
	}

	Sort(tasks, SortByDueDate, OrderAsc)

	assert.Equal(t, "due soon", tasks[0].Title)
	assert.Equal(t, "due later", tasks[1].Title)
	assert.Nil(t, tasks[2].DueDate)
	assert.Nil(t, tasks[3].DueDate)

	Sort(tasks, SortByDueDate, OrderDesc)
	assert.Nil(t, tasks[0].DueDate)
	assert.Nil(t, tasks[1].DueDate)
	assert.Equal(t, "due later", tasks[2].Title)
	assert.Equal(t, "due soon", tasks[3].Title)
}

func TestSortByTitleCaseInsensitive(t *testing.T) {
	base := time.Now()
	tasks := []models.Task{
		makeTask("banana", models.PriorityLow, false, nil, base),
		makeTask("Apple", models.PriorityLow, false, nil, base),
		makeTask("cherry", models.PriorityLow, false, nil, base),
	}

	Sort(tasks, SortByTitle, OrderAsc)

	assert.Equal(t, "Apple", tasks[0].Title)
	assert.Equal(t, "banana", tasks[1].Title)
	assert.Equal(t, "cherry", tasks[2].Title)
}

func TestSortByCreatedDefaultsToDescending(t *testing.T) {
	tasks := sampleTasks()

	Sort(tasks, SortByCreated, "")

	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "Buy milk", tasks[2].Title)
}

func TestSortIsStable(t *testing.T) {
	base := time.Now()
	tasks := []models.Task{
		makeTask("first", models.PriorityMedium, false, nil, base),
		makeTask("second", models.PriorityMedium, false, nil, base),
		makeTask("third", models.PriorityMedium, false, nil, base),
	}

	Sort(tasks, SortByPriority, OrderDesc)

	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "third", tasks[2].Title)
}

func TestSortKeyFromString(t *testing.T) {
	assert.Equal(t, SortByPriority, SortKeyFromString("priority"))
	assert.Equal(t, SortByDueDate, SortKeyFromString("dueDate"))
	assert.Equal(t, SortByDueDate, SortKeyFromString("due_date"))
	assert.Equal(t, SortByTitle, SortKeyFromString("title"))
	assert.Equal(t, SortByCreated, SortKeyFromString("created"))
	assert.Equal(t, SortByCreated, SortKeyFromString("bogus"))
}

func TestComputeStatsCountsAddUp(t *testing.T) {
	tasks := sampleTasks()

	stats := ComputeStats(tasks)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, stats.Total, stats.Completed+stats.Active)
	assert.Equal(t, 1, stats.PriorityStats.High)
	assert.Equal(t, 1, stats.PriorityStats.Medium)
	assert.Equal(t, 1, stats.PriorityStats.Low)
	assert.Equal(t, 33, stats.CompletionRate)
}

func TestComputeStatsEmptySet(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.CompletionRate)
}

func TestComputeStatsOverdue(t *testing.T) {
	base := time.Now()
	past := base.Add(-48 * time.Hour)
	future := base.Add(48 * time.Hour)

	tasks := []models.Task{
		makeTask("overdue", models.PriorityHigh, false, &past, base),
		makeTask("done late", models.PriorityHigh, true, &past, base),
		makeTask("upcoming", models.PriorityLow, false, &future, base),
		makeTask("no deadline", models.PriorityLow, false, nil, base),
	}

	stats := ComputeStats(tasks)

	assert.Equal(t, 1, stats.Overdue)
}

func TestComputeStatsIgnoresUnknownPriority(t *testing.T) {
	base := time.Now()
	tasks := []models.Task{
		makeTask("weird", models.Priority("Urgent"), false, nil, base),
		makeTask("normal", models.PriorityMedium, false, nil, base),
	}

	stats := ComputeStats(tasks)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.PriorityStats.High)
	assert.Equal(t, 1, stats.PriorityStats.Medium)
	assert.Equal(t, 0, stats.PriorityStats.Low)
}
