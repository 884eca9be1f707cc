package domain

// WebhookPayload is the top-level body of a Messenger webhook delivery.
// One delivery may carry multiple entries, each with multiple messaging events.
type WebhookPayload struct {
	Object string  `json:"object"` // always "page" for Messenger
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events for a single page.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one inbound event. Exactly one of Message or Postback is
// set for events this service acts on; Delivery, Read, and echo messages are
// platform notifications and are skipped.
type MessagingEvent struct {
	Sender    Principal `json:"sender"`
	Recipient Principal `json:"recipient"`
	Timestamp int64     `json:"timestamp"`

	Message  *Message  `json:"message,omitempty"`
	Postback *Postback `json:"postback,omitempty"`
	Delivery *Delivery `json:"delivery,omitempty"`
	Read     *Read     `json:"read,omitempty"`
}

// Principal is a page-scoped sender or recipient id (PSID).
type Principal struct {
	ID string `json:"id"`
}

// Message is a free-text message, optionally carrying attachments.
type Message struct {
	MID         string       `json:"mid"`
	Text        string       `json:"text"`
	IsEcho      bool         `json:"is_echo,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is non-text media (image, video, audio, file).
type Attachment struct {
	Type    string            `json:"type"`
	Payload AttachmentPayload `json:"payload"`
}

type AttachmentPayload struct {
	URL string `json:"url,omitempty"`
}

// Postback is a structured button press carrying an opaque payload string.
type Postback struct {
	Payload string `json:"payload"`
	Title   string `json:"title"`
}

// Delivery is a delivery receipt for previously sent messages.
type Delivery struct {
	MIDs      []string `json:"mids"`
	Watermark int64    `json:"watermark"`
}

// Read is a read receipt.
type Read struct {
	Watermark int64 `json:"watermark"`
}

// EventKind classifies a messaging event for dispatch.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindMessage
	KindPostback
	// KindIgnorable covers echoes, delivery receipts, and read receipts
	// that the platform sends but this service never responds to.
	KindIgnorable
)

func (k EventKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindPostback:
		return "postback"
	case KindIgnorable:
		return "ignorable"
	default:
		return "unknown"
	}
}

// Kind classifies the event. Echoes and receipts are recognized before the
// message/postback split so the page's own messages never loop back through
// the dispatcher.
func (e *MessagingEvent) Kind() EventKind {
	if e.Delivery != nil || e.Read != nil {
		return KindIgnorable
	}
	if e.Message != nil {
		if e.Message.IsEcho {
			return KindIgnorable
		}
		return KindMessage
	}
	if e.Postback != nil {
		return KindPostback
	}
	return KindUnknown
}
