package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIdentifier converts a student identifier into a stream seed.
// Integers are accepted as they are; strings must consist of digits only
// once surrounding whitespace is removed. The result must be positive.
func ParseIdentifier(value any) (int64, error) {
	var id int64
	switch v := value.(type) {
	case int:
		id = int64(v)
	case int32:
		id = int64(v)
	case int64:
		id = v
	case uint32:
		id = int64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.TrimLeft(s, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, v)
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, v)
		}
		id = parsed
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidIdentifier, value, value)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIdentifier, id)
	}
	return id, nil
}
