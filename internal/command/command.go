package command

import "context"

type Client interface {
	// HandleCommand serves bot commands until ctx is cancelled.
	HandleCommand(ctx context.Context) error
}
