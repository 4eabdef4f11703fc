package compiler

import (
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"

	"github.com/TFMV/ddlplan/pkg/errors"
)

var (
	ddlLexer = lexer.Must(lexer.Regexp(
		`(?ms)` +
			`(\s+)` +
			`|(?P<Comment>--[^\n]*$)` +
			`|(?i)(?P<SHOW>\bSHOW\b)` +
			`|(?i)(?P<CONNECTORS>\bCONNECTORS\b)` +
			`|(?i)(?P<LIKE>\bLIKE\b)` +
			"|(?P<Ident>[\\p{L}_][\\p{L}\\p{N}_]*|`[^`]+`)" +
			`|(?P<String>'([^'\\]*(\\.[^'\\]*)*)'|"([^"\\]*(\\.[^"\\]*)*)")` +
			`|(?P<Punct>;)`,
	))

	showConnectorsParser = participle.MustBuild(
		&showConnectorsStmt{},
		participle.Lexer(ddlLexer),
		participle.Elide("Comment"),
	)
)

type showConnectorsStmt struct {
	Show    bool            `SHOW @CONNECTORS`
	Pattern *patternLiteral `[ LIKE @@ ]`
	End     bool            `[ @";" ]`
}

// Keywords are accepted as bare patterns after LIKE.
type patternLiteral struct {
	Quoted *string `  @String`
	Ident  *string `| @( Ident | SHOW | CONNECTORS | LIKE )`
}

func (p *patternLiteral) value() string {
	if p.Quoted != nil {
		return unquote(*p.Quoted)
	}
	return strings.Trim(*p.Ident, "`")
}

// ShowConnectors is a parsed SHOW CONNECTORS statement.
type ShowConnectors struct {
	// Pattern is nil when no LIKE clause was given.
	Pattern *string
}

// Parse parses a SHOW CONNECTORS statement.
func Parse(stmt string) (*ShowConnectors, error) {
	if strings.TrimSpace(stmt) == "" {
		return nil, errors.ErrEmptyStatement
	}
	if !isShowConnectors(stmt) {
		return nil, errors.Wrap(errors.ErrUnsupportedStatement, errors.CodeUnsupportedStatement,
			"only SHOW CONNECTORS is supported").WithDetail("statement", stmt)
	}

	ast := &showConnectorsStmt{}
	if err := showConnectorsParser.ParseString(stmt, ast); err != nil {
		perr := errors.Wrap(err, errors.CodeParseFailed, "failed to parse statement")
		if lerr, ok := err.(*lexer.Error); ok {
			perr.WithDetail("line", lerr.Tok.Pos.Line).
				WithDetail("column", lerr.Tok.Pos.Column)
		}
		return nil, perr
	}

	out := &ShowConnectors{}
	if ast.Pattern != nil {
		p := ast.Pattern.value()
		out.Pattern = &p
	}
	return out, nil
}

func isShowConnectors(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) < 2 {
		return false
	}
	return strings.EqualFold(fields[0], "SHOW") &&
		strings.EqualFold(strings.TrimRight(fields[1], ";"), "CONNECTORS")
}

// unquote strips the quotes and resolves only escaped backslashes and
// escaped quotes. Any other backslash sequence is kept verbatim for the
// pattern's consumer to interpret.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	quote := s[0]
	body := s[1 : len(s)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			next := body[i+1]
			if next == '\\' || next == quote {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
