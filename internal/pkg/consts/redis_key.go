package consts

const (
	PostDirtyKey = "post:dirty"
)

const (
	ReactionToggleLock = "lock:reaction:toggle:"
)
