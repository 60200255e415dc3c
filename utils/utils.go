package utils

import (
	"fmt"

	"github.com/takoeight0821/exprcalc/token"
	"gopkg.in/yaml.v3"
)

// Where renders the position of t for error messages.
func Where(t token.Token) string {
	if t.Kind == token.EOF {
		return "at end"
	}
	return fmt.Sprintf("at %d", t.Offset)
}

// Describe renders t the way it appears in "found ..." messages.
func Describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	return "`" + t.Lexeme + "`"
}

// Positioned is implemented by errors that point at a byte offset of the input.
type Positioned interface {
	error
	Pos() int
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}
