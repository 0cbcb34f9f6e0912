package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/stager/internal/core/locate"
)

func promptTasks() []locate.Task {
	return []locate.Task{
		{ARN: "arn:aws:ecs:eu-west-1:123:task/c/1111aaaa", ContainerNames: []string{"myapp-web"}},
		{ARN: "arn:aws:ecs:eu-west-1:123:task/c/2222bbbb", ContainerNames: []string{"myapp-worker-default"}},
	}
}

func TestSelectTask_PicksByNumber(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("2\n"), &out)

	task, err := selector.SelectTask(promptTasks())
	require.NoError(t, err)
	assert.Equal(t, "2222bbbb", task.ID())
}

func TestSelectTask_ListsEveryCandidateOnce(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("1\n"), &out)

	_, err := selector.SelectTask(promptTasks())
	require.NoError(t, err)

	listing := out.String()
	assert.Equal(t, 1, strings.Count(listing, "1111aaaa"))
	assert.Equal(t, 1, strings.Count(listing, "2222bbbb"))
	assert.Contains(t, listing, "[1]")
	assert.Contains(t, listing, "[2]")
}

func TestSelectTask_InputWithoutTrailingNewline(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("1"), &out)

	task, err := selector.SelectTask(promptTasks())
	require.NoError(t, err)
	assert.Equal(t, "1111aaaa", task.ID())
}

func TestSelectTask_RejectsNonNumeric(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("web\n"), &out)

	_, err := selector.SelectTask(promptTasks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestSelectTask_RejectsOutOfRange(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("9\n"), &out)

	_, err := selector.SelectTask(promptTasks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestSelectTask_EmptyCandidates(t *testing.T) {
	var out strings.Builder
	selector := New(strings.NewReader("1\n"), &out)

	_, err := selector.SelectTask(nil)
	require.Error(t, err)
}
