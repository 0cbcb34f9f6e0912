// Package prompt implements interactive disambiguation for the locate flow.
// When a task candidate set is ambiguous, the operator picks from a numbered
// list. Selection blocks with no timeout; interrupting the process is the
// only cancellation path.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/artpar/stager/internal/core/locate"
)

// =============================================================================
// Stdin Selector
// =============================================================================

// StdinSelector asks the operator to choose from a numbered candidate list.
// The list goes to out so that stdout stays clean for machine-readable
// command output.
type StdinSelector struct {
	in  io.Reader
	out io.Writer
}

// New creates a selector reading from in and writing the list to out.
func New(in io.Reader, out io.Writer) *StdinSelector {
	return &StdinSelector{in: in, out: out}
}

// NewTerminal creates a selector wired to stdin and stderr.
func NewTerminal() *StdinSelector {
	return New(os.Stdin, os.Stderr)
}

// SelectTask presents every candidate once, numbered from 1, and returns the
// chosen task.
func (s *StdinSelector) SelectTask(tasks []locate.Task) (locate.Task, error) {
	if len(tasks) == 0 {
		return locate.Task{}, errors.New("no tasks to select from")
	}

	fmt.Fprintln(s.out, "Select a task:")
	for i, task := range tasks {
		fmt.Fprintf(s.out, "  [%d] %s\n", i+1, task.Label())
	}
	fmt.Fprint(s.out, "Enter number: ")

	input, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && input == "" {
		return locate.Task{}, fmt.Errorf("failed to read selection: %w", err)
	}

	input = strings.TrimSpace(input)
	selection, err := strconv.Atoi(input)
	if err != nil || selection < 1 || selection > len(tasks) {
		return locate.Task{}, fmt.Errorf("invalid selection %q", input)
	}

	return tasks[selection-1], nil
}
