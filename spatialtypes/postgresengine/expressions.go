package postgresengine

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/gijs/postgis-types-go/spatialtypes"
)

const asBinaryFunction = "ST_AsBinary"

// BindExpression wraps a literal supplied for a spatial column, so the
// server reconstructs the value from its text form. The caller may pass WKT,
// EWKT, a hex-encoded WKB string, or a *spatialtypes.WKBElement (lowered to
// its hex form). Column types without a from-text constructor (raster) pass
// the literal through unwrapped.
//
// The returned expression composes: it can be used anywhere goqu accepts an
// expression, including inside larger WHERE or SELECT expressions.
func BindExpression(columnType spatialtypes.ColumnType, value any) exp.Expression {
	bindable, hasFromText := columnType.(spatialtypes.TextBindable)
	if !hasFromText {
		return goqu.V(bindLiteral(value))
	}

	return goqu.Func(bindable.FromTextFunction(), goqu.V(bindLiteral(value)))
}

// ColumnExpression wraps a read reference to a spatial column in
// ST_AsBinary, so the driver always transports a canonical binary encoding
// regardless of the server's storage format. Column types that already have
// an unambiguous wire format (raster) are returned unwrapped.
//
// The returned expression composes: it fires on every read reference to the
// column, including inside larger expressions.
func ColumnExpression(columnType spatialtypes.ColumnType, column exp.IdentifierExpression) exp.Expression {
	if _, transportsBinary := columnType.(spatialtypes.BinaryTransported); !transportsBinary {
		return column
	}

	return goqu.Func(asBinaryFunction, column)
}

// bindLiteral lowers element wrappers to a form the server's from-text
// constructor accepts; everything else is passed through for goqu to bind.
func bindLiteral(value any) any {
	if element, isElement := value.(*spatialtypes.WKBElement); isElement {
		return element.String()
	}

	return value
}
