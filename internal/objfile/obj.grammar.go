package objfile

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type objFile struct {
	Stmts []*objStmt `( @@ | EOL )*`
}

type objStmt struct {
	Vertex   *vertexStmt `  "v" @@`
	TexCoord *texStmt    `| "vt" @@`
	Normal   *otherStmt  `| "vn" @@`
	Face     *faceStmt   `| "f" @@`
	Object   *objectStmt `| "o" @@`
	Other    *directive  `| @@`
}

type vertexStmt struct {
	Pos    lexer.Position
	Coords []float64 `@Number+`
}

type texStmt struct {
	Pos    lexer.Position
	Coords []float64 `@Number+`
}

type faceStmt struct {
	Pos     lexer.Position
	Corners []*faceCorner `@@+`
}

type faceCorner struct {
	V  int  `@Number`
	VT *int `( "/" @Number?`
	VN *int `  ( "/" @Number )? )?`
}

type objectStmt struct {
	Name string `@( Ident | Number )*`
}

type otherStmt struct {
	Args []string `@( Ident | Number | "/" )*`
}

type directive struct {
	Keyword string   `@Ident`
	Args    []string `@( Ident | Number | "/" )*`
}

var sObjLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"comment", `#[^\r\n]*`},
	{"EOL", `[\r\n]+`},
	{"whitespace", `[ \t]+`},
	{"Number", `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{"Punct", `/`},
	{"Ident", `[^\s#/]+`},
})

var sParseObj = participle.MustBuild[objFile](
	participle.Lexer(sObjLexer),
)
