package data

// Types of a result value as a string.
type Types string

// The valid types as constants, limited for our use.
const (
	ERROR  Types = "error"
	NONE   Types = "none"
	STRING Types = "string"
)
