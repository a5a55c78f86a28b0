package search

import "fmt"

// FieldError reports which request parameter carried an invalid value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ConditionKind distinguishes how a condition is evaluated by the store.
type ConditionKind int

const (
	// KindContains is a case-insensitive substring match on a text column.
	KindContains ConditionKind = iota
	// KindCompare is a numeric comparison on a stored column.
	KindCompare
	// KindDerived is a numeric comparison on the calories value derived
	// from the nutrients display string; it cannot run as a plain WHERE
	// clause and forces the two-stage execution path.
	KindDerived
)

// Condition is one named predicate of the composite filter.
type Condition struct {
	Field string
	Kind  ConditionKind
	Term  string     // KindContains
	Pred  *Predicate // KindCompare, KindDerived
}

// Filter is the parsed form of a search request. Zero-value fields impose
// no constraint; the zero Filter matches every record.
type Filter struct {
	Title     string
	Cuisine   string
	Rating    *Predicate
	TotalTime *Predicate
	Calories  *Predicate
}

// ParseFilter builds a Filter from the raw request parameters. Empty
// parameters are skipped; a malformed comparison value fails the whole
// filter with a FieldError naming the parameter.
func ParseFilter(title, cuisine, rating, totalTime, calories string) (Filter, error) {
	f := Filter{Title: title, Cuisine: cuisine}

	var err error
	if f.Rating, err = ParseComparison(rating); err != nil {
		return Filter{}, &FieldError{Field: "rating", Err: err}
	}
	if f.TotalTime, err = ParseComparison(totalTime); err != nil {
		return Filter{}, &FieldError{Field: "total_time", Err: err}
	}
	if f.Calories, err = ParseComparison(calories); err != nil {
		return Filter{}, &FieldError{Field: "calories", Err: err}
	}
	return f, nil
}

// Conditions returns the composite filter as a list of named predicates,
// in a fixed order so compiled queries are reproducible.
func (f Filter) Conditions() []Condition {
	var conds []Condition
	if f.Title != "" {
		conds = append(conds, Condition{Field: "title", Kind: KindContains, Term: f.Title})
	}
	if f.Cuisine != "" {
		conds = append(conds, Condition{Field: "cuisine", Kind: KindContains, Term: f.Cuisine})
	}
	if f.Rating != nil {
		conds = append(conds, Condition{Field: "rating", Kind: KindCompare, Pred: f.Rating})
	}
	if f.TotalTime != nil {
		conds = append(conds, Condition{Field: "total_time", Kind: KindCompare, Pred: f.TotalTime})
	}
	if f.Calories != nil {
		conds = append(conds, Condition{Field: "calories", Kind: KindDerived, Pred: f.Calories})
	}
	return conds
}

// NeedsDerived reports whether the filter requires the derived-calories
// execution path.
func (f Filter) NeedsDerived() bool {
	return f.Calories != nil
}
