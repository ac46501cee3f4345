package postgresql

import (
	"fmt"
	"strings"
)

type queryBuilder struct {
	columns []string
	table   string
	where   []string
	args    []any
	orderBy []string
	limit   *int
	offset  *int
}

// NewQueryBuilder creates a SELECT builder. Conditions use `?` placeholders which are
// rewritten to `$n` in the order they are added.
func NewQueryBuilder() QueryBuilder {
	return &queryBuilder{}
}

func (qb *queryBuilder) Select(columns ...string) QueryBuilder {
	qb.columns = append(qb.columns, columns...)
	return qb
}

func (qb *queryBuilder) From(table string) QueryBuilder {
	qb.table = table
	return qb
}

func (qb *queryBuilder) Where(condition string, args ...any) QueryBuilder {
	for _, arg := range args {
		qb.args = append(qb.args, arg)
		condition = strings.Replace(condition, "?", fmt.Sprintf("$%d", len(qb.args)), 1)
	}
	qb.where = append(qb.where, condition)
	return qb
}

func (qb *queryBuilder) OrderBy(column string, desc ...bool) QueryBuilder {
	order := "ASC"
	if len(desc) > 0 && desc[0] {
		order = "DESC"
	}
	qb.orderBy = append(qb.orderBy, column+" "+order)
	return qb
}

func (qb *queryBuilder) Limit(limit int) QueryBuilder {
	qb.limit = &limit
	return qb
}

func (qb *queryBuilder) Offset(offset int) QueryBuilder {
	qb.offset = &offset
	return qb
}

func (qb *queryBuilder) Build() (string, []any) {
	var query strings.Builder
	args := append([]any(nil), qb.args...)

	query.WriteString("SELECT ")
	if len(qb.columns) == 0 {
		query.WriteString("*")
	} else {
		query.WriteString(strings.Join(qb.columns, ", "))
	}

	query.WriteString(" FROM ")
	query.WriteString(qb.table)

	if len(qb.where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(qb.where, " AND "))
	}

	if len(qb.orderBy) > 0 {
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(qb.orderBy, ", "))
	}

	if qb.limit != nil {
		args = append(args, *qb.limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	if qb.offset != nil {
		args = append(args, *qb.offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	return query.String(), args
}
