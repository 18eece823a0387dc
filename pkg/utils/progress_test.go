package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_String(t *testing.T) {
	pb := NewProgressBar(4, "upload")
	pb.SetOutput(nil)
	pb.SetWidth(4)
	pb.Update(2)
	assert.Equal(t, "upload [██░░] 2/4", pb.String())

	pb.Update(10)
	assert.Equal(t, "upload [████] 4/4", pb.String())
}

func TestStepIndicator(t *testing.T) {
	var buf bytes.Buffer
	s := NewStepIndicator(&buf, "Type", "Application", "Details")
	s.Show(1)
	assert.Equal(t, "Application [██░] 2/3\n", buf.String())

	s.Show(7)
	assert.Equal(t, "Application [██░] 2/3\n", buf.String())
	assert.Equal(t, "Details [███] 3/3", s.Label(2))
}
