package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ProgressBar renders a fixed-width bar for a bounded count
type ProgressBar struct {
	total       int
	current     int
	description string
	width       int
	out         io.Writer
}

// NewProgressBar creates a new progress bar writing to stdout
func NewProgressBar(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		description: description,
		width:       20,
		out:         os.Stdout,
	}
}

// SetOutput redirects rendering
func (pb *ProgressBar) SetOutput(w io.Writer) { pb.out = w }

// SetWidth sets the bar width in cells
func (pb *ProgressBar) SetWidth(width int) {
	if width > 0 {
		pb.width = width
	}
}

// Update sets the current position and renders
func (pb *ProgressBar) Update(current int) {
	pb.current = min(max(current, 0), pb.total)
	pb.render()
}

// SetDescription updates the description
func (pb *ProgressBar) SetDescription(desc string) {
	pb.description = desc
}

// String returns the bar without writing it
func (pb *ProgressBar) String() string {
	if pb.total <= 0 {
		return pb.description
	}
	filled := pb.width * pb.current / pb.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.width-filled)
	return fmt.Sprintf("%s [%s] %d/%d", pb.description, bar, pb.current, pb.total)
}

func (pb *ProgressBar) render() {
	if pb.out == nil {
		return
	}
	fmt.Fprintln(pb.out, pb.String())
}

// StepIndicator shows the position within a fixed sequence of named steps
type StepIndicator struct {
	steps []string
	bar   *ProgressBar
}

// NewStepIndicator creates an indicator over steps
func NewStepIndicator(out io.Writer, steps ...string) *StepIndicator {
	bar := NewProgressBar(len(steps), "")
	bar.SetWidth(len(steps))
	bar.SetOutput(out)
	return &StepIndicator{steps: steps, bar: bar}
}

// Show renders step i (zero-based)
func (s *StepIndicator) Show(i int) {
	if i < 0 || i >= len(s.steps) {
		return
	}
	s.bar.SetDescription(s.steps[i])
	s.bar.Update(i + 1)
}

// Label returns the rendered line for step i without writing it
func (s *StepIndicator) Label(i int) string {
	if i < 0 || i >= len(s.steps) {
		return ""
	}
	s.bar.SetDescription(s.steps[i])
	s.bar.current = i + 1
	return s.bar.String()
}
