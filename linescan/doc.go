// Package linescan classifies the lines of a text document into typed
// tokens.
//
// A [Scanner] holds an ordered list of [Matcher] values. For every line the
// first matcher whose pattern matches the entire line maps it to a [Token];
// lines no matcher accepts become a generic [Line]. The built-in YAML
// matchers recognize comment lines ([Comment]) and mapping lines
// ([Mapping]) and compute their nesting depth from leading spaces:
//
//	sc, err := linescan.NewYAML(2)
//	for tok := range sc.Scan(text).All() {
//	    switch t := tok.(type) {
//	    case *linescan.Mapping:
//	        fmt.Println(t.Depth, t.Key)
//	    case *linescan.Comment:
//	        fmt.Println(t.Depth, t.Content)
//	    }
//	}
//
// A [Scan] splits its content into lines once and maps them lazily on every
// traversal, so it can be ranged any number of times without holding the
// tokens of a previous pass.
package linescan
