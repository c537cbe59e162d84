package notify

// PushMessage is the payload handed to the out-of-process web-push sender via
// the push queue. Delivery (VAPID signing, endpoint POSTs) is not this
// service's concern.
type PushMessage struct {
	UserID             string `json:"user_id"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	URL                string `json:"url,omitempty"`
	Tag                string `json:"tag,omitempty"`
	RequireInteraction bool   `json:"require_interaction,omitempty"`
}
