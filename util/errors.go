package util

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrChannelNotFound = &Error{Message: "channel does not exist"}
	ErrChannelOffline  = &Error{Message: "channel is offline"}
	ErrChannelPrivate  = &Error{Message: "channel is in a private show"}
	ErrChannelBanned   = &Error{Message: "channel is not available in this region"}
	ErrNoStreamName    = &Error{Message: "channel is live but no stream name was advertised"}
	ErrNoVariants      = &Error{Message: "master playlist contains no variants"}
)
