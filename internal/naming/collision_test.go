package naming

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/ebookmeta/internal/event"
)

// fixedClock yields UnixMicro()%10000 == 1234.
func fixedClock() time.Time { return time.UnixMicro(1_700_000_000_001_234) }

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
}

func TestExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"books/Dune.EPUB", "epub"},
		{"a.b/c.pdf", "pdf"},
		{"noext", "unknown"},
		{"trailing.", "unknown"},
		{"x.Mobi", "mobi"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Extension(tc.path))
		})
	}
}

func TestGetOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("books", "Dune.epub"), GetOutputPath("books/old.EPUB", "Dune", "epub"))
	assert.Equal(t, "Dune.pdf", GetOutputPath("old.pdf", "Dune", "pdf"))
}

func TestRename_Unchanged(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Dune.epub")
	touch(t, src)

	rec := &event.Recorder{}
	out, err := NewRenamer(rec).Rename(src, "Dune", "epub", false)
	require.NoError(t, err)
	assert.Equal(t, src, out.Path)
	assert.False(t, out.Changed)
	assert.FileExists(t, src)
	assert.Equal(t, []event.Kind{event.RenameUnchanged}, rec.Kinds())
}

func TestRename_Moves(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.epub")
	touch(t, src)

	rec := &event.Recorder{}
	out, err := NewRenamer(rec).Rename(src, "Dune - Herbert (1965)", "epub", false)
	require.NoError(t, err)

	want := filepath.Join(dir, "Dune - Herbert (1965).epub")
	assert.Equal(t, want, out.Path)
	assert.True(t, out.Changed)
	assert.False(t, out.Disambiguated)
	assert.FileExists(t, want)
	assert.NoFileExists(t, src)
	assert.Equal(t, 1, rec.Count(event.RenamePerformed))
}

func TestRename_DryRunNeverMutates(t *testing.T) {
	for _, taken := range []bool{false, true} {
		name := "free"
		if taken {
			name = "taken"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "old.epub")
			touch(t, src)
			naive := filepath.Join(dir, "Dune.epub")
			if taken {
				touch(t, naive)
			}

			rec := &event.Recorder{}
			out, err := NewRenamer(rec, WithClock(fixedClock)).Rename(src, "Dune", "epub", true)
			require.NoError(t, err)
			assert.True(t, out.DryRun)
			assert.True(t, out.Changed)
			assert.FileExists(t, src)

			if taken {
				assert.Equal(t, filepath.Join(dir, "Dune 1234.epub"), out.Path)
				assert.True(t, out.Disambiguated)
				assert.NoFileExists(t, out.Path)
				assert.Equal(t, 1, rec.Count(event.CollisionDetected))
			} else {
				assert.Equal(t, naive, out.Path)
				assert.NoFileExists(t, naive)
			}
			assert.Equal(t, 1, rec.Count(event.DryRun))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			if taken {
				assert.Len(t, entries, 2)
			} else {
				assert.Len(t, entries, 1)
			}
		})
	}
}

func TestRename_Collision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.epub")
	naive := filepath.Join(dir, "Dune.epub")
	touch(t, src)
	touch(t, naive)

	rec := &event.Recorder{}
	out, err := NewRenamer(rec, WithClock(fixedClock)).Rename(src, "Dune", "epub", false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Dune 1234.epub"), out.Path)
	assert.NotEqual(t, naive, out.Path)
	assert.True(t, out.Disambiguated)
	assert.FileExists(t, out.Path)
	assert.NoFileExists(t, src)

	// The occupant is untouched.
	b, err := os.ReadFile(naive)
	require.NoError(t, err)
	assert.Equal(t, "Dune.epub", string(b))

	assert.Equal(t, []event.Kind{event.CollisionDetected, event.RenamePerformed}, rec.Kinds())
}

func TestRename_SecondCollisionAdvancesToken(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.epub")
	touch(t, src)
	touch(t, filepath.Join(dir, "Dune.epub"))
	touch(t, filepath.Join(dir, "Dune 1234.epub"))

	out, err := NewRenamer(nil, WithClock(fixedClock)).Rename(src, "Dune", "epub", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Dune 1235.epub"), out.Path)
}

func TestRename_HardLinkedDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.epub")
	touch(t, src)
	linked := filepath.Join(dir, "Dune.epub")
	if err := os.Link(src, linked); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}

	for _, dryRun := range []bool{true, false} {
		rec := &event.Recorder{}
		out, err := NewRenamer(rec, WithClock(fixedClock)).Rename(src, "Dune", "epub", dryRun)
		require.NoError(t, err)
		assert.True(t, out.Disambiguated, "dryRun=%v", dryRun)
		assert.Equal(t, filepath.Join(dir, "Dune 1234.epub"), out.Path)
		assert.Equal(t, 1, rec.Count(event.CollisionDetected))
	}

	assert.NoFileExists(t, src)
	assert.FileExists(t, linked)
	assert.FileExists(t, filepath.Join(dir, "Dune 1234.epub"))
}

func TestCaseOnly(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dune.epub")
	touch(t, src)
	other := filepath.Join(dir, "Other.epub")
	if err := os.Link(src, other); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}

	assert.False(t, caseOnly(src, src), "identical names")
	assert.False(t, caseOnly(src, other), "hard link under another name")
}

func TestRename_AttemptsExhausted(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.epub")
	touch(t, src)

	r := NewRenamer(nil, WithClock(fixedClock), WithMaxAttempts(3))
	calls := 0
	r.move = func(_, dst string) error {
		calls++
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}

	out, err := r.Rename(src, "Dune", "epub", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollision)
	assert.Equal(t, 3, calls)
	assert.Equal(t, src, out.Path)
	assert.FileExists(t, src)

	var re *RenameError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, src, re.Source)
}

func TestRename_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gone.epub")

	_, err := NewRenamer(nil).Rename(src, "Dune", "epub", false)
	require.Error(t, err)

	var re *RenameError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, src, re.Source)
	assert.Equal(t, filepath.Join(dir, "Dune.epub"), re.Dest)
	assert.Contains(t, err.Error(), "unable to rename")
}

func TestWithMaxAttempts_IgnoresNonPositive(t *testing.T) {
	r := NewRenamer(nil, WithMaxAttempts(0))
	assert.Equal(t, defaultMaxAttempts, r.maxAttempts)
	r = NewRenamer(nil, WithMaxAttempts(9))
	assert.Equal(t, 9, r.maxAttempts)
}
