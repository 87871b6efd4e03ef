package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/harvestlane/backoffice/internal/types"
)

// conditions accumulates positional WHERE clauses, always scoped to the caller's tenant.
// Each clause uses a single ? for its argument.
type conditions struct {
	clauses []string
	args    []interface{}
}

func tenantConditions(ctx context.Context, column string) *conditions {
	c := &conditions{}
	c.add(column+" = ?", types.GetTenantID(ctx))
	return c
}

func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, strings.Replace(clause, "?", "$"+strconv.Itoa(len(c.args)), 1))
}

func (c *conditions) where() string {
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// placeholder appends a bare argument and returns its positional marker
func (c *conditions) placeholder(arg interface{}) string {
	c.args = append(c.args, arg)
	return "$" + strconv.Itoa(len(c.args))
}
