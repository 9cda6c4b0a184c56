package vim

// objects maps the object key after i/a to its spec. Open and close
// bracket keys are aliases for the same pair, as are b and B.
var objects = map[rune]ObjectSpec{
	'w': {Kind: ObjectWord},
	'W': {Kind: ObjectWORD},
	'p': {Kind: ObjectParagraph},

	'"':  {Kind: ObjectQuote, Quote: '"'},
	'\'': {Kind: ObjectQuote, Quote: '\''},
	'`':  {Kind: ObjectQuote, Quote: '`'},

	'(': {Kind: ObjectPair, Open: '(', Close: ')'},
	')': {Kind: ObjectPair, Open: '(', Close: ')'},
	'b': {Kind: ObjectPair, Open: '(', Close: ')'},
	'[': {Kind: ObjectPair, Open: '[', Close: ']'},
	']': {Kind: ObjectPair, Open: '[', Close: ']'},
	'{': {Kind: ObjectPair, Open: '{', Close: '}'},
	'}': {Kind: ObjectPair, Open: '{', Close: '}'},
	'B': {Kind: ObjectPair, Open: '{', Close: '}'},
}

func lookupObject(r rune) (ObjectSpec, bool) {
	obj, ok := objects[r]
	return obj, ok
}
