package ui

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// PrintJSON renders a JSON document with syntax highlighting, falling back
// to plain output when verbose/CI mode is on or highlighting fails for any
// reason.
func PrintJSON(document []byte) {
	if IsVerbose() {
		fmt.Println(string(document))
		return
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		fmt.Println(string(document))
		return
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(document))
	if err != nil {
		fmt.Println(string(document))
		return
	}

	formatter := formatters.TTY256
	style := styles.Get("monokai")
	if err := formatter.Format(os.Stdout, style, iterator); err != nil {
		fmt.Println(string(document))
	}
}
