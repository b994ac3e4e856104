// Package check is the defensive-check machinery: leveled checks that hand a
// violation descriptor to a process-wide, replaceable handler when they fail.
package check

// Level is the level tag a violation carries.
type Level string

const (
	LevelSafe   Level = "SAF"
	LevelAssert Level = "DBG"
	LevelOpt    Level = "OPT"
	LevelInvoke Level = "INV"

	ReviewLevelSafe   Level = "R-SAF"
	ReviewLevelReview Level = "R-DBG"
	ReviewLevelOpt    Level = "R-OPT"
	ReviewLevelInvoke Level = "R-INV"
)

// IsReview reports whether l is one of the review levels.
func (l Level) IsReview() bool {
	switch l {
	case ReviewLevelSafe, ReviewLevelReview, ReviewLevelOpt, ReviewLevelInvoke:
		return true
	}
	return false
}

type record struct {
	comment    string
	fileName   string
	lineNumber int
	level      Level
}

func (r *record) Comment() string  { return r.comment }
func (r *record) FileName() string { return r.fileName }
func (r *record) LineNumber() int  { return r.lineNumber }

// Violation describes a failed assertion-level check.
type Violation struct {
	record
}

// NewViolation returns a descriptor for a failed check at level.
func NewViolation(comment, fileName string, lineNumber int, level Level) *Violation {
	return &Violation{record{comment, fileName, lineNumber, level}}
}

// AssertLevel returns the level of the failed check.
func (v *Violation) AssertLevel() Level { return v.level }

// ReviewViolation describes a failed review.
type ReviewViolation struct {
	record
}

// NewReviewViolation returns a descriptor for a failed review at level.
func NewReviewViolation(comment, fileName string, lineNumber int, level Level) *ReviewViolation {
	return &ReviewViolation{record{comment, fileName, lineNumber, level}}
}

// ReviewLevel returns the level of the failed review.
func (v *ReviewViolation) ReviewLevel() Level { return v.level }
