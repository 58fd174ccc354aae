package serviceimpl

import (
	"fmt"
	"strings"

	"rental-crm/pkg/query"
)

// evalPredicate ประเมิน predicate ที่ pkg/query สร้าง (col ILIKE ?, col = ?, AND, OR, วงเล็บ)
// กับ row ในหน่วยความจำ ใช้เฉพาะใน test
func evalPredicate(p query.Predicate, row map[string]interface{}) bool {
	if p.IsEmpty() {
		return true
	}
	sql := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(p.SQL())
	e := &predEval{toks: strings.Fields(sql), args: p.Args(), row: row}
	result := e.or()
	if e.pos != len(e.toks) || e.argi != len(e.args) {
		panic(fmt.Sprintf("predicate not fully consumed: %q", p.SQL()))
	}
	return result
}

type predEval struct {
	toks []string
	pos  int
	args []interface{}
	argi int
	row  map[string]interface{}
}

func (e *predEval) peek() string {
	if e.pos < len(e.toks) {
		return e.toks[e.pos]
	}
	return ""
}

func (e *predEval) next() string {
	t := e.peek()
	e.pos++
	return t
}

// ทุก branch ถูกประเมินเพื่อให้ args ถูกใช้ตามลำดับ
func (e *predEval) or() bool {
	result := e.and()
	for e.peek() == "OR" {
		e.next()
		rhs := e.and()
		result = result || rhs
	}
	return result
}

func (e *predEval) and() bool {
	result := e.primary()
	for e.peek() == "AND" {
		e.next()
		rhs := e.primary()
		result = result && rhs
	}
	return result
}

func (e *predEval) primary() bool {
	if e.peek() == "(" {
		e.next()
		result := e.or()
		if e.next() != ")" {
			panic("unbalanced predicate")
		}
		return result
	}

	column, op, placeholder := e.next(), e.next(), e.next()
	if placeholder != "?" {
		panic(fmt.Sprintf("unexpected token %q", placeholder))
	}
	arg := e.args[e.argi]
	e.argi++

	value, ok := e.row[column]
	if !ok {
		panic(fmt.Sprintf("unknown column %q", column))
	}

	switch op {
	case "=":
		return value != nil && fmt.Sprint(value) == fmt.Sprint(arg)
	case "ILIKE":
		s, ok := value.(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(unescapeLike(arg.(string))))
	default:
		panic(fmt.Sprintf("unsupported operator %q", op))
	}
}

func unescapeLike(pattern string) string {
	pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")
	return strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(pattern)
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
