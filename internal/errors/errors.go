package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/onehabit/internal/keyring"
	"github.com/julianstephens/onehabit/internal/logger"
	"github.com/julianstephens/onehabit/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix and, for
// known failure kinds, a hint on the following line
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors the user can fix
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrPairFull):
		return "a pair holds two people; ask your partner for a new invite code"
	case stderrors.Is(err, storage.ErrAlreadyPaired):
		return "run 'onehabit pair leave' before creating or joining another pair"
	case stderrors.Is(err, storage.ErrInviteCodeTaken):
		return "choose a different 6-character invite code"
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "set the connection string with the ONEHABIT_DB_CONNECTION environment variable instead"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
