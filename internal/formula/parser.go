package formula

import (
	"fmt"
	"strconv"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/dov"
	"github.com/rfielding/mvgrn-ctl/internal/errs"
)

var reservedWords = map[string]bool{
	"true": true, "false": true,
	"AG": true, "AF": true, "AX": true,
	"EG": true, "EF": true, "EX": true,
	"A": true, "E": true, "U": true, "W": true,
}

// Parse reads a CTL formula per spec.md §6's grammar and returns its AST.
// knownVariables must contain every variable name the network declares;
// an AP over any other name fails with errs.ErrMalformedFormula.
func Parse(text string, knownVariables map[string]bool) (*ctl.Formula, error) {
	p := &parser{lex: newLexer(text), vars: knownVariables}
	if err := p.advance(); err != nil {
		return nil, err
	}
	f, err := p.parseStateOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected trailing input %q at position %d", errs.ErrMalformedFormula, p.cur.text, p.cur.pos)
	}
	return f, nil
}

type parser struct {
	lex  *lexer
	cur  token
	vars map[string]bool
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) expectIdent(word string) error {
	if p.cur.kind != tokIdent || p.cur.text != word {
		return fmt.Errorf("%w: expected %q at position %d, found %q", errs.ErrMalformedFormula, word, p.cur.pos, p.cur.text)
	}
	return p.advance()
}

// --- state stratum: || binds loosest, then &&, then the temporal operators ---

func (p *parser) parseStateOr() (*ctl.Formula, error) {
	left, err := p.parseStateAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOrOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseStateAnd()
		if err != nil {
			return nil, err
		}
		left = ctl.Disjunction(left, right)
	}
	return left, nil
}

func (p *parser) parseStateAnd() (*ctl.Formula, error) {
	left, err := p.parseStateUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAndAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseStateUnary()
		if err != nil {
			return nil, err
		}
		left = ctl.Conjunction(left, right)
	}
	return left, nil
}

func (p *parser) parseStateUnary() (*ctl.Formula, error) {
	if p.cur.kind == tokIdent {
		switch p.cur.text {
		case "AG", "AF", "AX", "EG", "EF", "EX":
			op := p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			operand, err := p.parseStateUnary()
			if err != nil {
				return nil, err
			}
			return liftTemporalUnary(op, operand), nil
		case "A", "E":
			quantifier := p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			left, err := p.parseStateUnary()
			if err != nil {
				return nil, err
			}
			if p.cur.kind != tokIdent || (p.cur.text != "U" && p.cur.text != "W") {
				return nil, fmt.Errorf("%w: expected 'U' or 'W' after %q-quantified operand at position %d", errs.ErrMalformedFormula, quantifier, p.cur.pos)
			}
			connective := p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseStateUnary()
			if err != nil {
				return nil, err
			}
			return liftTemporalBinary(quantifier, connective, left, right), nil
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ctl.Boolean(true), nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ctl.Boolean(false), nil
		}
	}
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseStateOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at position %d", errs.ErrMalformedFormula, p.cur.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return f, nil
	}
	a, err := p.parseAtomicOr()
	if err != nil {
		return nil, err
	}
	return ctl.Lift(a), nil
}

func liftTemporalUnary(op string, operand *ctl.Formula) *ctl.Formula {
	switch op {
	case "AG":
		return ctl.AG(operand)
	case "AF":
		return ctl.AF(operand)
	case "AX":
		return ctl.AX(operand)
	case "EG":
		return ctl.EG(operand)
	case "EF":
		return ctl.EF(operand)
	case "EX":
		return ctl.EX(operand)
	}
	panic("unreachable: unknown unary temporal operator " + op)
}

func liftTemporalBinary(quantifier, connective string, left, right *ctl.Formula) *ctl.Formula {
	switch {
	case quantifier == "A" && connective == "U":
		return ctl.AU(left, right)
	case quantifier == "A" && connective == "W":
		return ctl.AW(left, right)
	case quantifier == "E" && connective == "U":
		return ctl.EU(left, right)
	case quantifier == "E" && connective == "W":
		return ctl.EW(left, right)
	}
	panic("unreachable: unknown quantifier/connective pair " + quantifier + connective)
}

// --- atomic stratum: | binds loosest, then &, then ! (prefix) ---

func (p *parser) parseAtomicOr() (*ctl.Atomic, error) {
	left, err := p.parseAtomicAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAtomicAnd()
		if err != nil {
			return nil, err
		}
		left = ctl.AtomicUnion(left, right)
	}
	return left, nil
}

func (p *parser) parseAtomicAnd() (*ctl.Atomic, error) {
	left, err := p.parseAtomicUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAtomicUnary()
		if err != nil {
			return nil, err
		}
		left = ctl.AtomicIntersection(left, right)
	}
	return left, nil
}

func (p *parser) parseAtomicUnary() (*ctl.Atomic, error) {
	if p.cur.kind == tokNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseAtomicUnary()
		if err != nil {
			return nil, err
		}
		return ctl.Negate(operand), nil
	}
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		a, err := p.parseAtomicOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at position %d", errs.ErrMalformedFormula, p.cur.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return a, nil
	}
	return p.parseAtomicProposition()
}

func (p *parser) parseAtomicProposition() (*ctl.Atomic, error) {
	if p.cur.kind != tokIdent {
		return nil, fmt.Errorf("%w: expected a variable name at position %d, found %q", errs.ErrMalformedFormula, p.cur.pos, p.cur.text)
	}
	if reservedWords[p.cur.text] {
		return nil, fmt.Errorf("%w: %q is a reserved word, not a variable name, at position %d", errs.ErrMalformedFormula, p.cur.text, p.cur.pos)
	}
	name := p.cur.text
	if !p.vars[name] {
		return nil, fmt.Errorf("%w: undeclared variable %q at position %d", errs.ErrMalformedFormula, name, p.cur.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind != tokOperator {
		return nil, fmt.Errorf("%w: expected '>=' or '<=' after %q at position %d", errs.ErrMalformedFormula, name, p.cur.pos)
	}
	var op dov.Operator
	switch p.cur.text {
	case ">=":
		op = dov.GTE
	case "<=":
		op = dov.LTE
	default:
		return nil, fmt.Errorf("%w: unknown comparison operator %q at position %d", errs.ErrMalformedFormula, p.cur.text, p.cur.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind != tokNumber {
		return nil, fmt.Errorf("%w: expected an integer threshold at position %d", errs.ErrMalformedFormula, p.cur.pos)
	}
	threshold, err := strconv.Atoi(p.cur.text)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid integer %q at position %d", errs.ErrMalformedFormula, p.cur.text, p.cur.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return ctl.AP(name, op, threshold), nil
}
