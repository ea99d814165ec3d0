package pt

type Kind int

const (
	KindInvalid Kind = iota

	KindRoot
	KindComment
	KindProduct
	KindDefinitionList
	KindDefinition
	KindTerm
	KindRepetition
	KindException

	// Primaries
	KindTerminal
	KindRepeat
	KindOption
	KindGroup
	KindSpecial
	KindIdentifier
	KindEmptyString

	// Leaves that are not primaries
	KindText
	KindSpace
	KindLiteral
	KindNumber
)

var kindNames = map[Kind]string{
	KindInvalid:        "Invalid",
	KindRoot:           "Root",
	KindComment:        "Comment",
	KindProduct:        "Product",
	KindDefinitionList: "DefinitionList",
	KindDefinition:     "Definition",
	KindTerm:           "Term",
	KindRepetition:     "Repetition",
	KindException:      "Exception",
	KindTerminal:       "Terminal",
	KindRepeat:         "Repeat",
	KindOption:         "Option",
	KindGroup:          "Group",
	KindSpecial:        "Special",
	KindIdentifier:     "Identifier",
	KindEmptyString:    "EmptyString",
	KindText:           "Text",
	KindSpace:          "Space",
	KindLiteral:        "Literal",
	KindNumber:         "Number",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && k != KindInvalid {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsLeaf reports whether nodes of kind k carry data instead of children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindTerminal, KindIdentifier, KindEmptyString, KindText, KindSpace, KindLiteral, KindNumber:
		return true
	case KindInvalid, KindRoot, KindComment, KindProduct, KindDefinitionList, KindDefinition,
		KindTerm, KindRepetition, KindException, KindRepeat, KindOption, KindGroup, KindSpecial:
		return false
	}
	return false
}

// IsPrimary reports whether k may stand as the primary of a term.
func (k Kind) IsPrimary() bool {
	switch k {
	case KindTerminal, KindIdentifier, KindRepeat, KindOption, KindGroup, KindSpecial, KindEmptyString:
		return true
	case KindInvalid, KindRoot, KindComment, KindProduct, KindDefinitionList, KindDefinition,
		KindTerm, KindRepetition, KindException, KindText, KindSpace, KindLiteral, KindNumber:
		return false
	}
	return false
}

// IsTrivia reports whether k may appear between tokens without meaning.
func (k Kind) IsTrivia() bool {
	return k == KindSpace || k == KindComment
}
