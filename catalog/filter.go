package catalog

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/lucafour/pizzeria/errors"
)

// Predicate reports whether an item matches a compiled filter.
type Predicate func(Item) bool

// ItemDeclarations returns the field declarations for item filtering.
// The boolean literals and the float/int comparison overloads are
// declared here because the standard declarations carry neither.
func ItemDeclarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("true", filtering.TypeBool),
		filtering.DeclareIdent("false", filtering.TypeBool),
		filtering.DeclareIdent("category", filtering.TypeString),
		filtering.DeclareIdent("name", filtering.TypeString),
		filtering.DeclareIdent("vegetarian", filtering.TypeBool),
		filtering.DeclareIdent("spicy", filtering.TypeBool),
		filtering.DeclareIdent("price", filtering.TypeFloat),
		filtering.DeclareIdent("rating", filtering.TypeFloat),
		filtering.DeclareIdent("prep_minutes", filtering.TypeInt),
		filtering.DeclareIdent("ingredients", filtering.TypeList(filtering.TypeString)),
	}
	for fn, id := range map[string]string{
		filtering.FunctionEquals:        "equals",
		filtering.FunctionNotEquals:     "not_equals",
		filtering.FunctionLessThan:      "less_than",
		filtering.FunctionLessEquals:    "less_equals",
		filtering.FunctionGreaterThan:   "greater_than",
		filtering.FunctionGreaterEquals: "greater_equals",
	} {
		opts = append(opts, filtering.DeclareFunction(fn,
			filtering.NewFunctionOverload(id+"_float_int", filtering.TypeBool, filtering.TypeFloat, filtering.TypeInt)))
	}
	return filtering.NewDeclarations(opts...)
}

// ParseFilter compiles an AIP-160 filter expression such as
// `category = "vegetarian" AND price < 12` into a predicate over
// catalog items. An empty expression matches everything.
func ParseFilter(filterStr string) (Predicate, error) {
	if strings.TrimSpace(filterStr) == "" {
		return func(Item) bool { return true }, nil
	}

	decls, err := ItemDeclarations()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFilter, "create declarations", err)
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFilter, "parse filter", err)
	}

	predicate, err := translateExpr(filter.CheckedExpr.Expr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFilter, "translate filter", err)
	}
	return predicate, nil
}

// FilterItems applies a compiled predicate, preserving catalog order.
func (c *Catalog) FilterItems(predicate Predicate) []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if predicate == nil || predicate(item) {
			out = append(out, item.clone())
		}
	}
	return out
}

// translateExpr translates a CEL expression to a predicate.
func translateExpr(e *expr.Expr) (Predicate, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

// translateCall translates a CEL function call to a predicate.
func translateCall(call *expr.Expr_Call) (Predicate, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateAnd(call.Args)
	case "_||_", "OR":
		return translateOr(call.Args)
	case "!_", "NOT":
		return translateNot(call.Args)
	case "_==_", "=":
		return translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return translateComparison(call.Args, "!=")
	case "_<_", "<":
		return translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return translateComparison(call.Args, "<=")
	case "_>_", ">":
		return translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return translateComparison(call.Args, ">=")
	case "_:_", ":":
		return translateHas(call.Args)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func translateAnd(args []*expr.Expr) (Predicate, error) {
	left, right, err := translatePair(args, "AND")
	if err != nil {
		return nil, err
	}
	return func(item Item) bool { return left(item) && right(item) }, nil
}

func translateOr(args []*expr.Expr) (Predicate, error) {
	left, right, err := translatePair(args, "OR")
	if err != nil {
		return nil, err
	}
	return func(item Item) bool { return left(item) || right(item) }, nil
}

func translateNot(args []*expr.Expr) (Predicate, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("NOT requires 1 argument")
	}
	inner, err := translateExpr(args[0])
	if err != nil {
		return nil, err
	}
	return func(item Item) bool { return !inner(item) }, nil
}

func translatePair(args []*expr.Expr, op string) (Predicate, Predicate, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := translateExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// translateHas handles the `:` operator for ingredient membership,
// e.g. `ingredients:"basil"`.
func translateHas(args []*expr.Expr) (Predicate, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("has requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	if field != "ingredients" {
		return nil, fmt.Errorf("has is only supported on ingredients, got %s", field)
	}
	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}
	needle, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("ingredients membership requires a string value")
	}
	needle = strings.ToLower(needle)
	return func(item Item) bool {
		for _, ingredient := range item.Ingredients {
			if strings.ToLower(ingredient) == needle {
				return true
			}
		}
		return false
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (Predicate, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}

	switch field {
	case "category", "name":
		return compareString(field, op, value)
	case "vegetarian", "spicy":
		return compareBool(field, op, value)
	case "price", "rating", "prep_minutes":
		return compareNumeric(field, op, value)
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}
}

func compareString(field, op string, value any) (Predicate, error) {
	want, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s requires a string value", field)
	}
	get := func(item Item) string {
		if field == "name" {
			return item.Name
		}
		return item.Category
	}
	switch op {
	case "=":
		return func(item Item) bool { return get(item) == want }, nil
	case "!=":
		return func(item Item) bool { return get(item) != want }, nil
	default:
		return nil, fmt.Errorf("operator %s is not supported for %s", op, field)
	}
}

func compareBool(field, op string, value any) (Predicate, error) {
	want, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%s requires a boolean value", field)
	}
	get := func(item Item) bool {
		if field == "spicy" {
			return item.Spicy
		}
		return item.Vegetarian
	}
	switch op {
	case "=":
		return func(item Item) bool { return get(item) == want }, nil
	case "!=":
		return func(item Item) bool { return get(item) != want }, nil
	default:
		return nil, fmt.Errorf("operator %s is not supported for %s", op, field)
	}
}

func compareNumeric(field, op string, value any) (Predicate, error) {
	want, err := numericValue(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	get := func(item Item) float64 {
		switch field {
		case "price":
			return item.UnitPrice.InexactFloat64()
		case "rating":
			return item.Rating
		default:
			return float64(item.PrepMinutes)
		}
	}
	switch op {
	case "=":
		return func(item Item) bool { return get(item) == want }, nil
	case "!=":
		return func(item Item) bool { return get(item) != want }, nil
	case "<":
		return func(item Item) bool { return get(item) < want }, nil
	case "<=":
		return func(item Item) bool { return get(item) <= want }, nil
	case ">":
		return func(item Item) bool { return get(item) > want }, nil
	case ">=":
		return func(item Item) bool { return get(item) >= want }, nil
	default:
		return nil, fmt.Errorf("operator %s is not supported for %s", op, field)
	}
}

func numericValue(value any) (float64, error) {
	switch v := value.(type) {
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("requires a numeric value, got %T", value)
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_IdentExpr:
		// The boolean literals parse as identifiers.
		switch kind.IdentExpr.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("expected constant, got identifier %q", kind.IdentExpr.Name)
	default:
		return nil, fmt.Errorf("expected constant, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}
