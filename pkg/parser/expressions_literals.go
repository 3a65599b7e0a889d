package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"minipy/interpreter-go/pkg/ast"
)

func (ctx *parseContext) parseIntegerLiteral(node *sitter.Node) (ast.Expression, error) {
	content := strings.ReplaceAll(ctx.text(node), "_", "")
	if content == "" {
		return nil, parseErrorAt(node, "empty integer literal")
	}
	switch content[len(content)-1] {
	case 'j', 'J':
		return ctx.parseImaginary(node, content[:len(content)-1])
	case 'l', 'L':
		return nil, unsupported(node, "long integer suffix")
	}

	value := new(big.Int)
	var ok bool
	if len(content) > 1 && content[0] == '0' && isPrefixedRadix(content[1]) {
		_, ok = value.SetString(content, 0)
	} else {
		_, ok = value.SetString(content, 10)
	}
	if !ok {
		return nil, parseErrorAt(node, "invalid integer literal %q", ctx.text(node))
	}
	return annotateExpression(ast.NewIntegerLiteral(value), node), nil
}

func isPrefixedRadix(c byte) bool {
	switch c {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func (ctx *parseContext) parseFloatLiteral(node *sitter.Node) (ast.Expression, error) {
	content := strings.ReplaceAll(ctx.text(node), "_", "")
	if content == "" {
		return nil, parseErrorAt(node, "empty float literal")
	}
	if last := content[len(content)-1]; last == 'j' || last == 'J' {
		return ctx.parseImaginary(node, content[:len(content)-1])
	}
	value, err := strconv.ParseFloat(content, 64)
	if err != nil {
		return nil, parseErrorAt(node, "invalid float literal %q", ctx.text(node))
	}
	return annotateExpression(ast.NewFloatLiteral(value), node), nil
}

func (ctx *parseContext) parseImaginary(node *sitter.Node, digits string) (ast.Expression, error) {
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, parseErrorAt(node, "invalid imaginary literal %q", ctx.text(node))
	}
	return annotateExpression(ast.NewImaginaryLiteral(value), node), nil
}

func (ctx *parseContext) parseConcatenatedString(node *sitter.Node) (ast.Expression, error) {
	var sb strings.Builder
	for _, part := range namedChildren(node) {
		expr, err := ctx.parseStringLiteral(part)
		if err != nil {
			return nil, err
		}
		sb.WriteString(expr.(*ast.StringLiteral).Value)
	}
	return annotateExpression(ast.NewStringLiteral(sb.String()), node), nil
}

func (ctx *parseContext) parseStringLiteral(node *sitter.Node) (ast.Expression, error) {
	if node == nil || node.Kind() != "string" {
		return nil, parseErrorAt(node, "expected string literal")
	}
	for _, child := range namedChildren(node) {
		if child.Kind() == "interpolation" {
			return nil, unsupported(node, "f-string")
		}
	}

	raw := ctx.text(node)
	quoteAt := strings.IndexAny(raw, `'"`)
	if quoteAt < 0 {
		return nil, parseErrorAt(node, "malformed string literal")
	}
	prefix := strings.ToLower(raw[:quoteAt])
	if strings.Contains(prefix, "b") {
		return nil, unsupported(node, "bytes literal")
	}
	if strings.Contains(prefix, "f") {
		return nil, unsupported(node, "f-string")
	}
	isRaw := strings.Contains(prefix, "r")

	body := raw[quoteAt:]
	quoteLen := 1
	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)) {
		quoteLen = 3
	}
	if len(body) < 2*quoteLen {
		return nil, parseErrorAt(node, "unterminated string literal")
	}
	content := body[quoteLen : len(body)-quoteLen]
	if !isRaw {
		unescaped, err := unescapeString(content)
		if err != nil {
			return nil, parseErrorAt(node, "%s", err.Error())
		}
		content = unescaped
	}
	return annotateExpression(ast.NewStringLiteral(content), node), nil
}

type escapeError string

func (e escapeError) Error() string { return string(e) }

// unescapeString resolves backslash escapes. Unknown escapes are kept as
// written, backslash included.
func unescapeString(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i:end], 8, 32)
			sb.WriteRune(rune(v))
			i = end - 1
		case 'x', 'u', 'U':
			width := escapeWidth(e)
			if i+width >= len(s) {
				return "", escapeError("truncated \\" + string(e) + " escape")
			}
			v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				return "", escapeError("invalid \\" + string(e) + " escape")
			}
			if v > utf8.MaxRune {
				return "", escapeError("illegal Unicode character in \\" + string(e) + " escape")
			}
			sb.WriteRune(rune(v))
			i += width
		case 'N':
			return "", escapeError("named Unicode escapes are not supported")
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

func escapeWidth(e byte) int {
	switch e {
	case 'x':
		return 2
	case 'u':
		return 4
	default:
		return 8
	}
}
