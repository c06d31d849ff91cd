package parser

import "surgehdl/internal/token"

// assoc records operator associativity for the precedence-climbing loop in
// parseBinary.
type assoc uint8

const (
	leftAssoc assoc = iota
	rightAssoc
)

type opInfo struct {
	prec  int
	assoc assoc
}

// binaryPrec tables every infix operator's precedence level, low to high,
// following the teacher's precedence-climbing pattern. Ternary `?:` and
// assignment operators are handled outside this table by dedicated parse
// functions, since both bind looser than every entry here and assignment is
// right-associative at a single shared level.
var binaryPrec = map[token.Kind]opInfo{
	token.PipePipe:              {1, leftAssoc},
	token.MinusGreater:          {1, rightAssoc}, // implication
	token.LessMinusGreater:      {1, leftAssoc},  // equivalence
	token.AmpAmp:                {2, leftAssoc},
	token.Pipe:                  {3, leftAssoc},
	token.Caret:                 {4, leftAssoc},
	token.CaretTilde:            {4, leftAssoc},
	token.TildeCaret:            {4, leftAssoc},
	token.Amp:                   {5, leftAssoc},
	token.EqualsEquals:          {6, leftAssoc},
	token.BangEquals:            {6, leftAssoc},
	token.EqualsEqualsEquals:    {6, leftAssoc},
	token.BangEqualsEquals:      {6, leftAssoc},
	token.EqualsEqualsQuestion:  {6, leftAssoc},
	token.BangEqualsQuestion:    {6, leftAssoc},
	token.Less:                  {7, leftAssoc},
	token.LessEquals:            {7, leftAssoc},
	token.Greater:               {7, leftAssoc},
	token.GreaterEquals:         {7, leftAssoc},
	token.LessLess:              {8, leftAssoc},
	token.GreaterGreater:        {8, leftAssoc},
	token.LessLessLess:          {8, leftAssoc},
	token.GreaterGreaterGreater: {8, leftAssoc},
	token.Plus:                  {9, leftAssoc},
	token.Minus:                 {9, leftAssoc},
	token.Star:                  {10, leftAssoc},
	token.Slash:                 {10, leftAssoc},
	token.Percent:               {10, leftAssoc},
	token.StarStar:              {11, rightAssoc},
}

// assignOps are the assignment/compound-assignment spellings parsed at the
// lowest, right-associative precedence level by parseAssignment.
var assignOps = map[token.Kind]bool{
	token.Equals: true, token.PlusEquals: true, token.MinusEquals: true,
	token.StarEquals: true, token.SlashEquals: true, token.PercentEquals: true,
	token.AmpEquals: true, token.PipeEquals: true, token.CaretEquals: true,
	token.LessLessEquals: true, token.GreaterGreaterEquals: true,
	token.LessLessLessEquals: true, token.GreaterGreaterGreaterEquals: true,
}

// unaryPrefixOps are the single-operand prefix operators, including the
// reduction operators and pre-increment/decrement.
var unaryPrefixOps = map[token.Kind]bool{
	token.Plus: true, token.Minus: true, token.Bang: true, token.Tilde: true,
	token.Amp: true, token.Pipe: true, token.Caret: true,
	token.TildeAmp: true, token.TildePipe: true, token.TildeCaret: true, token.CaretTilde: true,
	token.PlusPlus: true, token.MinusMinus: true,
}
