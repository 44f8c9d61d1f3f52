package postgres

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dejobratic/vestuario/internal/catalog/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause renders filter as a WHERE clause with positional args starting at $1.
func whereClause(filter query.Filter, valid func(string) bool) (string, []any, error) {
	if filter.Unsatisfiable {
		return " WHERE FALSE", nil, nil
	}
	if len(filter.Predicates) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(filter.Predicates))
	args := make([]any, 0, len(filter.Predicates))
	for _, p := range filter.Predicates {
		if !valid(p.Column) {
			return "", nil, fmt.Errorf("unknown filter column %q", p.Column)
		}
		n := len(args) + 1
		switch p.Op {
		case query.OpContains:
			conds = append(conds, fmt.Sprintf("%s ILIKE $%d", p.Column, n))
			args = append(args, "%"+likeEscaper.Replace(fmt.Sprint(p.Value))+"%")
		case query.OpEquals:
			conds = append(conds, fmt.Sprintf("%s = $%d", p.Column, n))
			args = append(args, p.Value)
		case query.OpGTE:
			conds = append(conds, fmt.Sprintf("%s >= $%d", p.Column, n))
			args = append(args, p.Value)
		case query.OpLTE:
			conds = append(conds, fmt.Sprintf("%s <= $%d", p.Column, n))
			args = append(args, p.Value)
		case query.OpIn:
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", p.Column, n))
			args = append(args, p.Value)
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func orderClause(sort *query.Sort, valid func(string) bool) (string, error) {
	if sort == nil {
		return " ORDER BY id", nil
	}
	if !valid(sort.Column) {
		return "", fmt.Errorf("unknown sort column %q", sort.Column)
	}
	dir := "ASC"
	if sort.Direction == query.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", sort.Column, dir, dir), nil
}

func pageClause(page *query.Page, next int) (string, []any) {
	if page == nil {
		return "", nil
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", next, next+1), []any{page.Limit, max(page.Offset, 0)}
}

func placeholders(from, count int) string {
	ph := make([]string, count)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

func assignments(columns []string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return strings.Join(sets, ", ")
}

func deref(pointers []any) []any {
	values := make([]any, len(pointers))
	for i, p := range pointers {
		values[i] = reflect.ValueOf(p).Elem().Interface()
	}
	return values
}
