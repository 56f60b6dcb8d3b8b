package joos

// Mangling prefixes. Every symbol starts with "_J" followed by its kind letter.
const (
	MethodPrefix = "_JF"
	GlobalPrefix = "_JG"
	ClassPrefix  = "_JC"
	VTablePrefix = "_JV"

	// VTableCtorPrefix wraps a class symbol to name the function that fills its vtable.
	VTableCtorPrefix = "jcf.vtable.ctor."
)

// Grammar delimiters.
const (
	StaticMarker byte = 'C'
	EndOfList    byte = 'E'
)

// Type descriptor tags.
const (
	TagBoolean  byte = 'B'
	TagChar     byte = 'c'
	TagShort    byte = 's'
	TagInt      byte = 'i'
	TagByte     byte = 'b'
	TagVoid     byte = 'v'
	TagString   byte = 'S'
	TagObject   byte = 'O'
	TagArray    byte = 'A'
	TagClassRef byte = 'R'
)

// mangledType maps every single-character leaf tag to the type it stands for.
// TagArray and TagClassRef are composite and are not listed.
var mangledType = map[byte]Type{
	TagBoolean: Boolean,
	TagChar:    Char,
	TagShort:   Short,
	TagInt:     Int,
	TagByte:    Byte,
	TagVoid:    Void,
	TagString:  String,
	TagObject:  Object,
}

var primitiveTags = map[Primitive]byte{}
var referenceTags = map[Reference]byte{}

func init() {
	for tag, typ := range mangledType {
		switch t := typ.(type) {
		case Primitive:
			primitiveTags[t] = tag
		case Reference:
			referenceTags[t] = tag
		}
	}
}

// LookupTag returns the leaf type a single-character tag stands for.
func LookupTag(tag byte) (Type, bool) {
	t, ok := mangledType[tag]
	return t, ok
}

// LeafTag returns the tag of a primitive or built-in reference type.
func LeafTag(t Type) (byte, bool) {
	switch x := t.(type) {
	case Primitive:
		tag, ok := primitiveTags[x]
		return tag, ok
	case Reference:
		tag, ok := referenceTags[x]
		return tag, ok
	}
	return 0, false
}
