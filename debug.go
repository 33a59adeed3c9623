package exprgraph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/sjson"
)

// DebugGraph prints the expression tree rooted at e to stdout, mirroring
// the teacher's DebugLayout convention.
func DebugGraph(e Expression) {
	FprintGraph(os.Stdout, e)
}

// SprintGraph returns the expression tree rooted at e as a string.
func SprintGraph(e Expression) string {
	var sb strings.Builder
	FprintGraph(&sb, e)
	return sb.String()
}

// FprintGraph writes the expression tree rooted at e to w, one line per
// node, indented by depth.
func FprintGraph(w io.Writer, e Expression) {
	fprintGraphIndent(w, e, 0)
}

func fprintGraphIndent(w io.Writer, e Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s(%s) type=%s active=%v value=%s",
		indent, e.Name(), e.ExprClass(), e.ValueType(), e.IsActive(), e.Value())
	fmt.Fprintln(w, line)

	e.Subexpressions(func(sub Expression) {
		fprintGraphIndent(w, sub, depth+1)
	})
}

// JSONGraph renders the expression tree rooted at e as a JSON document,
// for machine-readable debug dumps and golden-file snapshot comparisons.
func JSONGraph(e Expression) (string, error) {
	return jsonGraphNode(e)
}

func jsonGraphNode(e Expression) (string, error) {
	doc := `{}`
	var err error
	set := func(path, value string) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}
	setBool := func(path string, value bool) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}
	set("name", e.Name())
	set("class", e.ExprClass())
	set("type", e.ValueType().String())
	setBool("active", e.IsActive())
	set("value", e.Value().String())
	if err != nil {
		return "", err
	}

	i := 0
	var subErr error
	e.Subexpressions(func(sub Expression) {
		if subErr != nil || err != nil {
			return
		}
		encoded, serr := jsonGraphNode(sub)
		if serr != nil {
			subErr = serr
			return
		}
		doc, err = sjson.SetRaw(doc, fmt.Sprintf("args.%d", i), encoded)
		i++
	})
	if subErr != nil {
		return "", subErr
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}
