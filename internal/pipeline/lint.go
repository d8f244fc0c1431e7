package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never take a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// LintFragment reports tags left open or closed without a matching opener in
// a trusted markup fragment. It never modifies the fragment; an empty result
// means the fragment is balanced.
func LintFragment(fragment string) []string {
	var problems []string
	var open []string

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				problems = append(problems, err.Error())
			}
			for i := len(open) - 1; i >= 0; i-- {
				problems = append(problems, fmt.Sprintf("unclosed <%s>", open[i]))
			}
			return problems
		case html.StartTagToken:
			tok := z.Token()
			if !voidElements[tok.DataAtom] {
				open = append(open, tok.Data)
			}
		case html.EndTagToken:
			tok := z.Token()
			if len(open) > 0 && open[len(open)-1] == tok.Data {
				open = open[:len(open)-1]
				continue
			}
			problems = append(problems, fmt.Sprintf("unexpected </%s>", tok.Data))
		}
	}
}
