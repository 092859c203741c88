package renamer

// Counts tallies outcomes for one entry kind.
type Counts struct {
	Renamed   int
	Planned   int
	Unchanged int
	Skipped   int
	Unmatched int
	Invalid   int
}

// Total is the number of entries examined.
func (c Counts) Total() int {
	return c.Renamed + c.Planned + c.Unchanged + c.Skipped + c.Unmatched + c.Invalid
}

func (c *Counts) add(o Outcome) {
	switch o {
	case OutcomeRenamed:
		c.Renamed++
	case OutcomePlanned:
		c.Planned++
	case OutcomeUnchanged:
		c.Unchanged++
	case OutcomeSkippedExtension:
		c.Skipped++
	case OutcomeUnmatched:
		c.Unmatched++
	case OutcomeInvalidName:
		c.Invalid++
	}
}

func (c *Counts) merge(o Counts) {
	c.Renamed += o.Renamed
	c.Planned += o.Planned
	c.Unchanged += o.Unchanged
	c.Skipped += o.Skipped
	c.Unmatched += o.Unmatched
	c.Invalid += o.Invalid
}

// Summary aggregates results for a pass or a whole run.
type Summary struct {
	Files       Counts
	Directories Counts
}

// Add counts one result.
func (s *Summary) Add(res Result) {
	switch res.Kind {
	case KindFile:
		s.Files.add(res.Outcome)
	case KindDirectory:
		s.Directories.add(res.Outcome)
	}
}

// Merge folds other into s.
func (s *Summary) Merge(other Summary) {
	s.Files.merge(other.Files)
	s.Directories.merge(other.Directories)
}
