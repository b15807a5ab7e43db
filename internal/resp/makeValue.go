package resp

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{
		Type: TypeSimpleString,
		Str:  []byte(s),
	}
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{
		Type: TypeError,
		Str:  []byte(s),
	}
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return Value{
		Type: TypeBulkString,
		Str:  []byte(s),
	}
}

// MakeBulkBytes construct BulkString Value from a byte slice. A nil slice is an empty string, not a nil one
func MakeBulkBytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{
		Type: TypeBulkString,
		Str:  b,
	}
}

// MakeNilBulkString construct nil BulkSting Value
func MakeNilBulkString() Value {
	return Value{
		Type:   TypeBulkString,
		IsNull: true,
	}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{
		Type:    TypeInteger,
		Integer: n,
	}
}

// MakeArray creates a standard RESP array containing the provided elements
func MakeArray(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{
		Type:  TypeArray,
		Array: values,
	}
}

// MakeCommand builds the array of bulk strings a client sends for a command line
func MakeCommand(args ...string) Value {
	elements := make([]Value, len(args))
	for i, arg := range args {
		elements[i] = MakeBulkString(arg)
	}
	return MakeArray(elements...)
}
