package query

// Term is a predicate that may or may not have been supplied.
type Term struct {
	predicate Predicate
	present   bool
}

// Contains matches a case-insensitive substring. Nil and empty values are absent.
func Contains(column string, value *string) Term {
	if value == nil || *value == "" {
		return Term{}
	}
	return Term{predicate: Predicate{Column: column, Op: OpContains, Value: *value}, present: true}
}

// Equals matches a value exactly. Nil and empty strings are absent; numeric zero is not.
func Equals[V any](column string, value *V) Term {
	return bound(column, OpEquals, value)
}

// Min is an inclusive lower bound.
func Min[V any](column string, value *V) Term {
	return bound(column, OpGTE, value)
}

// Max is an inclusive upper bound.
func Max[V any](column string, value *V) Term {
	return bound(column, OpLTE, value)
}

// In matches any of ids. A nil slice is absent; an empty one matches nothing.
func In(column string, ids []int64) Term {
	if ids == nil {
		return Term{}
	}
	return Term{predicate: Predicate{Column: column, Op: OpIn, Value: ids}, present: true}
}

func bound[V any](column string, op Op, value *V) Term {
	if value == nil {
		return Term{}
	}
	v := *value
	if s, ok := any(v).(string); ok && s == "" {
		return Term{}
	}
	return Term{predicate: Predicate{Column: column, Op: op, Value: v}, present: true}
}

// Compose keeps the supplied terms, in order, and flags contradictory ranges.
func Compose(terms ...Term) Filter {
	var filter Filter
	for _, term := range terms {
		if term.present {
			filter.Predicates = append(filter.Predicates, term.predicate)
		}
	}
	filter.Unsatisfiable = contradicts(filter.Predicates)
	return filter
}

func contradicts(preds []Predicate) bool {
	for _, lower := range preds {
		if lower.Op == OpIn {
			if ids, ok := lower.Value.([]int64); ok && len(ids) == 0 {
				return true
			}
		}
		if lower.Op != OpGTE {
			continue
		}
		for _, upper := range preds {
			if upper.Op != OpLTE || upper.Column != lower.Column {
				continue
			}
			if cmp, ok := Compare(lower.Value, upper.Value); ok && cmp > 0 {
				return true
			}
		}
	}
	return false
}
