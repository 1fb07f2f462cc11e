package css

// Position represents a position in a source file
type Position struct {
	Line      uint32
	Character uint32
}

// Declaration represents one property declaration found in a stylesheet.
// All byte offsets are relative to the start of the parsed source, so
// value-relative indexes from a tokenized value can be widened to absolute
// source positions by adding ValueStartByte.
type Declaration struct {
	Property string
	Value    string
	// StartByte is the offset of the property name
	StartByte int
	// ValueStartByte and ValueEndByte delimit the raw value text
	ValueStartByte int
	ValueEndByte   int
	// Start is the line/column of the declaration
	Start Position

	newValue string
	fixed    bool
}

// SetValue records a rewritten value for the declaration. The runner
// splices it back into the source once all rules have run.
func (d *Declaration) SetValue(v string) {
	d.newValue = v
	d.fixed = true
}

// FixedValue returns the rewritten value, if any rule produced one
func (d *Declaration) FixedValue() (string, bool) {
	return d.newValue, d.fixed
}
