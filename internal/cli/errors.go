package cli

import "fmt"

// usageError is a bad argument or flag value; nothing was sent anywhere.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type habitNotFoundError struct {
	id string
}

func (e habitNotFoundError) Error() string {
	return fmt.Sprintf("habit not found: %s", e.id)
}

func errHabitNotFound(id string) error {
	return habitNotFoundError{id: id}
}
