package exprgraph

import "fmt"

// ParserError reports a shape or typing violation discovered while an
// expression is constructed from an AST fragment. ParserErrors are always
// fatal to the enclosing plan load; they are never raised once an
// expression graph has been built and activated.
type ParserError struct {
	// Message describes what went wrong.
	Message string
	// ExprClass is the class tag of the expression under construction
	// (e.g. "Alias", "ArrayVariable"), when known.
	ExprClass string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ParserError) Error() string {
	if e.ExprClass != "" {
		return fmt.Sprintf("parser error building %s: %s", e.ExprClass, e.Message)
	}
	return fmt.Sprintf("parser error: %s", e.Message)
}

func (e *ParserError) Unwrap() error { return e.Cause }

// NewParserError builds a ParserError for the given expression class.
func NewParserError(class, format string, args ...any) *ParserError {
	return &ParserError{Message: fmt.Sprintf(format, args...), ExprClass: class}
}

// PlanError reports a runtime violation encountered while evaluating the
// expression graph: an out-of-range array index, an oversized array
// assignment, an element type mismatch, an assignment to a non-Assignable
// expression, an activation-count underflow, or a narrowing type-coercion
// failure. The surrounding plan executive decides, on catching a PlanError,
// whether to fail the whole plan or just the owning node.
type PlanError struct {
	// Message describes what went wrong.
	Message string
	// ExprName is the name of the expression that raised the error, if any.
	ExprName string
	// NodeName identifies the owning plan node, if any.
	NodeName string
	// ExprClass is the class tag of the expression (e.g. "ArrayReference").
	ExprClass string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *PlanError) Error() string {
	switch {
	case e.NodeName != "" && e.ExprName != "":
		return fmt.Sprintf("plan error in node %q, expression %q (%s): %s", e.NodeName, e.ExprName, e.ExprClass, e.Message)
	case e.ExprName != "":
		return fmt.Sprintf("plan error in expression %q (%s): %s", e.ExprName, e.ExprClass, e.Message)
	default:
		return fmt.Sprintf("plan error: %s", e.Message)
	}
}

func (e *PlanError) Unwrap() error { return e.Cause }

// NewPlanError builds a PlanError identifying the raising expression by
// name, owning node, and class tag.
func NewPlanError(exprName, nodeName, class, format string, args ...any) *PlanError {
	return &PlanError{
		Message:   fmt.Sprintf(format, args...),
		ExprName:  exprName,
		NodeName:  nodeName,
		ExprClass: class,
	}
}
