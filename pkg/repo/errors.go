package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// UserError is a failure caused by the user's input or the repository's
// current state. Its message is shown verbatim and the command exits cleanly.
type UserError struct {
	msg string
	err error
}

func (e *UserError) Error() string {
	return e.msg
}

func (e *UserError) Unwrap() error {
	return e.err
}

func userError(msg string) *UserError {
	return &UserError{msg: msg}
}

// IsUserError reports whether err carries a *UserError anywhere in its chain.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// UserMessage returns the message of the first *UserError in err's chain.
func UserMessage(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.msg, true
	}
	return "", false
}

var (
	ErrNotInitialized     = userError("Not in an initialized Gitlet directory.")
	ErrAlreadyInitialized = userError("A Gitlet version-control system already exists in the current directory.")
	ErrNoCommand          = userError("Please enter a command.")
	ErrUnknownCommand     = userError("No command with that name exists.")
	ErrIncorrectOperands  = userError("Incorrect operands.")

	ErrFileNotExist     = userError("File does not exist.")
	ErrNoReasonToRemove = userError("No reason to remove the file.")
	ErrEmptyMessage     = userError("Please enter a commit message.")
	ErrNoChanges        = userError("No changes added to the commit.")
	ErrNoCommitMessage  = userError("Found no commit with that message.")
	ErrNoSuchCommit     = userError("No commit with that id exists.")
	ErrPathNotTracked   = userError("File does not exist in that commit.")

	ErrBranchExists         = userError("A branch with that name already exists.")
	ErrNoSuchBranch         = userError("A branch with that name does not exist.")
	ErrCheckoutNoSuchBranch = userError("No such branch exists.")
	ErrCurrentBranch        = userError("Cannot remove the current branch.")
	ErrSameBranch           = userError("No need to checkout the current branch.")
	ErrInvalidBranchName    = userError("Invalid branch name.")
	ErrUntrackedFile        = userError("There is an untracked file in the way; delete it or add it first.")
	ErrSelfMerge            = userError("Cannot merge a branch with itself.")
	ErrUncommittedChanges   = userError("You have uncommitted changes.")
)

// ErrBadConfig is wrapped by the UserError returned for an unsupported
// configuration value.
var ErrBadConfig = errors.New("bad repository config")

func badConfig(key, value string) *UserError {
	return &UserError{
		msg: fmt.Sprintf("Unsupported %s %q in repository config.", key, value),
		err: ErrBadConfig,
	}
}

// Invariant violations. These are never caused by user input and are fatal.
var (
	ErrCorruptGraph  = errors.New("corrupt commit graph")
	ErrMissingObject = errors.New("referenced object missing from store")
	ErrCorruptState  = errors.New("corrupt repository state")
)

// GraphError reports a structural problem found while walking the commit
// graph from a given commit.
type GraphError struct {
	ID     object.Hash
	Reason string
}

func (e *GraphError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s at %s: %s", ErrCorruptGraph, e.ID, e.Reason)
}

func (e *GraphError) Is(target error) bool {
	return target == ErrCorruptGraph
}

// missingObject wraps a failed object read so that absent objects surface as
// ErrMissingObject while other I/O failures keep their own cause.
func missingObject(op string, id object.Hash, err error) error {
	if errors.Is(err, object.ErrNotFound) {
		return fmt.Errorf("%s: %s: %w", op, id, ErrMissingObject)
	}
	return fmt.Errorf("%s: %s: %w", op, id, err)
}
