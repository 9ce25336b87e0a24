package naming

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/backmassage/ebookmeta/internal/event"
)

const (
	defaultMaxAttempts = 5
	tokenModulus       = 10_000 // Four digits.
)

// Outcome is the result of one Rename call.
type Outcome struct {
	Path          string // Destination, or the source when nothing changed.
	Changed       bool   // Path differs from the source.
	Disambiguated bool   // A " NNNN" suffix was appended to the stem.
	DryRun        bool
}

// Renamer moves a file to a rendered name inside its own directory. It
// never overwrites: a taken destination gets a clock-derived suffix and the
// move is retried, bounded by the configured attempt count. A Renamer holds
// no per-file state.
type Renamer struct {
	sink        event.Sink
	now         func() time.Time
	maxAttempts int

	// Swappable for tests.
	move   func(src, dst string) error
	exists func(path string) bool
}

// RenamerOption customizes a Renamer.
type RenamerOption func(*Renamer)

// WithClock sets the time source for disambiguation tokens.
func WithClock(now func() time.Time) RenamerOption {
	return func(r *Renamer) { r.now = now }
}

// WithMaxAttempts bounds how many destinations Rename tries. Values below 1
// are ignored.
func WithMaxAttempts(n int) RenamerOption {
	return func(r *Renamer) {
		if n >= 1 {
			r.maxAttempts = n
		}
	}
}

// NewRenamer creates a ready-to-use Renamer. A nil sink discards events.
func NewRenamer(sink event.Sink, opts ...RenamerOption) *Renamer {
	if sink == nil {
		sink = event.Discard
	}
	r := &Renamer{
		sink:        sink,
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
		move:        renameNoReplace,
		exists:      pathExists,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rename moves source to "<dir of source>/<stem>.<ext>".
//
// When the destination is the source itself, nothing happens and the source
// path is returned. In dry-run mode the filesystem is only inspected, never
// changed, and the returned path is the one a real run would produce.
// Failures are *RenameError; running out of attempts wraps ErrCollision.
func (r *Renamer) Rename(source, stem, ext string, dryRun bool) (Outcome, error) {
	candidate := candidateName(stem, ext)
	parent := filepath.Dir(source)
	dest := filepath.Join(parent, candidate)

	if candidate == source || dest == filepath.Clean(source) {
		r.sink.Emit(event.New(event.RenameUnchanged, source))
		return Outcome{Path: source, DryRun: dryRun}, nil
	}

	collisions := 0
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if collisions > 0 {
			dest = filepath.Join(parent, candidateName(disambiguated(stem, r.token(collisions)), ext))
		}

		var err error
		if dryRun {
			if r.exists(dest) && !caseOnly(source, dest) {
				err = fs.ErrExist
			}
		} else {
			err = r.move(source, dest)
			if errors.Is(err, fs.ErrExist) && caseOnly(source, dest) {
				err = os.Rename(source, dest)
			}
		}

		switch {
		case err == nil:
			return r.done(source, dest, collisions > 0, dryRun), nil
		case errors.Is(err, fs.ErrExist):
			collisions++
			r.sink.Emit(event.New(event.CollisionDetected, source,
				"dest", dest, "attempt", strconv.Itoa(attempt+1)))
		default:
			return Outcome{Path: source, DryRun: dryRun}, &RenameError{Source: source, Dest: dest, Err: err}
		}
	}

	return Outcome{Path: source, DryRun: dryRun}, &RenameError{Source: source, Dest: dest, Err: ErrCollision}
}

func (r *Renamer) done(source, dest string, suffixed, dryRun bool) Outcome {
	kind := event.RenamePerformed
	if dryRun {
		kind = event.DryRun
	}
	r.sink.Emit(event.New(kind, source, "dest", dest))
	return Outcome{Path: dest, Changed: true, Disambiguated: suffixed, DryRun: dryRun}
}

// token derives the four-digit suffix from the clock's sub-second
// microseconds. n offsets it so a frozen or coarse clock still advances.
func (r *Renamer) token(n int) int {
	micros := r.now().UnixMicro() % tokenModulus
	return int(micros+int64(n-1)) % tokenModulus
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// caseOnly reports whether dest is source under a name differing only in
// case, as seen on a case-insensitive filesystem. A hard link to source
// under another name is a collision, not a case-only rename.
func caseOnly(source, dest string) bool {
	return filepath.Base(source) != filepath.Base(dest) &&
		strings.EqualFold(filepath.Base(source), filepath.Base(dest)) &&
		sameFile(source, dest)
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
