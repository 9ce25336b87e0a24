package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total         int
	Current       int
	Read          int // Metadata extracted and normalized.
	Renamed       int // Includes dry-run renames.
	Unchanged     int // Rendered name equals the current name.
	Disambiguated int // Renames that needed a uniqueness suffix.
	Skipped       int // Unsupported file types.
	Failed        int
	TotalBytes    int64 // Size of every file read.
}

// OK reports whether no file failed.
func (s *RunStats) OK() bool { return s.Failed == 0 }
