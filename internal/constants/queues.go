package constants

const (
	QueueChatMessage  = "chat.message"
	QueueChatCommand  = "chat.command"
	QueueAnnouncement = "chat.announce"
)
