package chart

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

// mermaidLexer tokenizes Mermaid pie chart text:
//
//	pie showData
//	    title Key elements
//	    "Calcium" : 42.96
//	    %% comment
var mermaidLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%%[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Title runs to the end of the line.
	{Name: "Title", Pattern: `(?i)title[ \t][^\n]*`},
	{Name: "Pie", Pattern: `(?i)pie\b`},
	{Name: "ShowData", Pattern: `(?i)showData\b`},

	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Colon", Pattern: `:`},
})

type mermaidPie struct {
	Header string          `parser:"@Pie @ShowData?"`
	Title  string          `parser:"@Title?"`
	Slices []*mermaidSlice `parser:"@@*"`
}

type mermaidSlice struct {
	Label string  `parser:"@String Colon"`
	Value float64 `parser:"@Number"`
}

var mermaidParser = participle.MustBuild[mermaidPie](
	participle.Lexer(mermaidLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Map(stripQuotes, "String"),
)

func stripQuotes(t lexer.Token) (lexer.Token, error) {
	t.Value = strings.TrimSpace(t.Value[1 : len(t.Value)-1])
	return t, nil
}

func readMermaid(r io.Reader) (Dataset, error) {
	doc, err := mermaidParser.Parse("", r)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse mermaid pie")
	}

	ds := Dataset{
		Title:   strings.TrimSpace(doc.Title[min(len(doc.Title), len("title")):]),
		Entries: make([]pie.Entry, len(doc.Slices)),
	}
	for i, s := range doc.Slices {
		ds.Entries[i] = pie.Entry{Name: s.Label, Value: s.Value}
	}
	return ds, nil
}

// MarshalMermaid renders a dataset as Mermaid pie chart text.
func MarshalMermaid(d Dataset) []byte {
	var b strings.Builder
	b.WriteString("pie\n")
	if d.Title != "" {
		b.WriteString("    title ")
		b.WriteString(d.Title)
		b.WriteByte('\n')
	}
	for _, e := range d.Entries {
		b.WriteString(`    "`)
		b.WriteString(strings.ReplaceAll(e.Name, `"`, "'"))
		b.WriteString(`" : `)
		b.WriteString(pie.FormatValue(e.Value))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
