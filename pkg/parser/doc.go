// Package parser turns the text of a build file into a types.Buildfile.
//
// Parsing happens in two layers. The Lexer classifies each physical line into
// a Token (blank, comment, group marker, assignment, target header or recipe
// line) and rejects lines that match none of them. The Parser consumes tokens
// with a two-state machine:
//
//	TopLevel            -- header -->  InRecipe(target)
//	InRecipe(target)    -- recipe -->  InRecipe(target)
//	InRecipe(target)    -- blank  -->  InRecipe(target)
//	InRecipe(target)    -- any other unindented line --> TopLevel
//
// A line is indented when it starts with a space or a tab. Comments directly
// above a header (no blank line in between) become the target's doc string;
// consecutive comment lines are joined with a single space. The current group
// is parser state, starting at types.DefaultGroup.
//
// Declaring the same target twice is a parse error reported at the second
// declaration.
package parser
