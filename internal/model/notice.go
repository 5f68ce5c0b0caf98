package model

// NoticeLevel grades a user-visible notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	default:
		return "info"
	}
}

// Notice is a message meant for the person driving the tool, such as a
// fallback being used or an optimization being accepted.
type Notice struct {
	Level   NoticeLevel
	Step    string
	Message string
}

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(n Notice) error
}
