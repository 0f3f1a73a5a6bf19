package domain

import "strings"

// ColumnCategory is the coarse type of a booking table column
type ColumnCategory string

const (
	CategoryInteger  ColumnCategory = "integer"
	CategoryDecimal  ColumnCategory = "decimal"
	CategoryBoolean  ColumnCategory = "boolean"
	CategoryTime     ColumnCategory = "time"
	CategoryDate     ColumnCategory = "date"
	CategoryDateTime ColumnCategory = "datetime"
	CategoryText     ColumnCategory = "text"
)

// Column describes one column of the booking table as discovered at runtime
type Column struct {
	Name          string
	Category      ColumnCategory
	Nullable      bool
	HasDefault    bool
	AutoGenerated bool
}

// RequiresValue reports whether an insert must supply a value for the column
func (c Column) RequiresValue() bool {
	return !c.Nullable && !c.HasDefault && !c.AutoGenerated
}

// CategoryFromSQLType maps a SQL data type name (PostgreSQL or MySQL spelling)
// to a column category. Unknown types are text.
func CategoryFromSQLType(dataType string) ColumnCategory {
	t := strings.ToLower(strings.TrimSpace(dataType))

	switch {
	case strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "datetime"):
		return CategoryDateTime
	case strings.HasPrefix(t, "time"):
		return CategoryTime
	case strings.HasPrefix(t, "date"):
		return CategoryDate
	case strings.HasPrefix(t, "bool"), t == "tinyint(1)", t == "bit":
		return CategoryBoolean
	case strings.HasPrefix(t, "decimal"), strings.HasPrefix(t, "numeric"),
		strings.HasPrefix(t, "float"), strings.HasPrefix(t, "double"),
		strings.HasPrefix(t, "real"), strings.HasPrefix(t, "money"):
		return CategoryDecimal
	case strings.HasPrefix(t, "interval"):
		return CategoryText
	case strings.HasPrefix(t, "int"), strings.HasPrefix(t, "tinyint"),
		strings.HasPrefix(t, "smallint"), strings.HasPrefix(t, "mediumint"),
		strings.HasPrefix(t, "bigint"), strings.Contains(t, "serial"):
		return CategoryInteger
	default:
		return CategoryText
	}
}

// Columns is the discovered schema of the booking table
type Columns []Column

// Find returns the column with the given name
func (cs Columns) Find(name string) (Column, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Has reports whether the column exists
func (cs Columns) Has(name string) bool {
	_, ok := cs.Find(name)
	return ok
}
