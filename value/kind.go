package value

// Kind identifies the variant held by a [Value].
type Kind uint8

// Value kinds. The zero Kind is [KindEmpty].
const (
	KindEmpty    Kind = iota // empty
	KindNumber               // number
	KindText                 // text
	KindBool                 // bool
	KindDate                 // date
	KindSequence             // sequence
	KindMapping              // mapping
)

var kindName = [...]string{
	KindEmpty:    "empty",
	KindNumber:   "number",
	KindText:     "text",
	KindBool:     "bool",
	KindDate:     "date",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}

	return "invalid"
}
