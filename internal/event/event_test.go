package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		kv   []string
		want map[string]string
	}{
		{"no attrs", nil, nil},
		{"pairs", []string{"key", "Title", "default", "Unknown"}, map[string]string{"key": "Title", "default": "Unknown"}},
		{"dangling key dropped", []string{"dest", "a.pdf", "attempt"}, map[string]string{"dest": "a.pdf"}},
		{"lone key", []string{"dest"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(RenamePerformed, "x.pdf", tt.kv...)
			assert.Equal(t, RenamePerformed, e.Kind)
			assert.Equal(t, "x.pdf", e.Path)
			assert.Equal(t, tt.want, e.Attrs)
		})
	}
}

func TestSinks(t *testing.T) {
	var got []Kind
	var s Sink = SinkFunc(func(e Event) { got = append(got, e.Kind) })
	s.Emit(New(ExtractStart, "a"))
	Discard.Emit(New(ExtractEnd, "a"))
	assert.Equal(t, []Kind{ExtractStart}, got)

	rec := &Recorder{}
	rec.Emit(New(CollisionDetected, "a"))
	rec.Emit(New(CollisionDetected, "a"))
	rec.Emit(New(RenamePerformed, "a"))
	assert.Equal(t, []Kind{CollisionDetected, CollisionDetected, RenamePerformed}, rec.Kinds())
	assert.Equal(t, 2, rec.Count(CollisionDetected))
	assert.Zero(t, rec.Count(DryRun))
}
