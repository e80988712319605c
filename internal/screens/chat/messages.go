package chat

import sess "github.com/vatly/vatly/internal/chat"

// replyMsg is sent when a chat turn completes.
type replyMsg struct {
	Reply sess.Message
	Err   error
}

// attachedMsg is sent when a file given with /attach has been read.
type attachedMsg struct {
	Attachment sess.Attachment
	Err        error
}
