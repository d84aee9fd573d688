package table

const (
	// JoinCodeLength is the number of characters in a join code
	JoinCodeLength = 6

	// JoinCodeChars is the alphabet for join codes, excluding
	// easily confused characters (0/O, 1/I)
	JoinCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MinSeats is the smallest table the rules allow
	MinSeats = 2

	// MaxSeats is the largest table the rules allow
	MaxSeats = 4

	// DefaultSeats is used when a create request omits the seat count
	DefaultSeats = 2

	// EventWindow is how many recent events a state view includes
	EventWindow = 40
)
