package openlibrary

// Status describes the observable connectivity state of the client.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusError   Status = "error"
	StatusLoading Status = "loading"
)

// StatusFunc receives status transitions plus an optional message.
// It is invoked synchronously from the calling goroutine.
type StatusFunc func(status Status, message string)

func (c *Client) report(status Status, message string) {
	if c.statusFn != nil {
		c.statusFn(status, message)
	}
}

// reportError classifies a failure into an observable status. Failures are
// surfaced here and still returned to the caller, never swallowed.
func (c *Client) reportError(err error) {
	if !c.isOnline() {
		c.report(StatusOffline, UserMessage(ErrOffline))
		return
	}
	c.report(StatusError, UserMessage(err))
}
