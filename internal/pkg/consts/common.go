package consts

const (
	FeedSortDefault = "default"
	FeedSortNew     = "new"
	FeedSortTop     = "top"
	FeedSortUnread  = "unread"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
