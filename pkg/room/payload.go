package room

// PayloadIn is a message from a connected client
// Context is an opaque client-chosen identifier echoed back in the response
type PayloadIn struct {
	Context string `json:"context"`
	Action  string `json:"action"`
	Seat    int    `json:"seat"`
	Amount  int    `json:"amount"`
}

// Response is a message sent to a connected client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Context string      `json:"context,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK returns an OK response for the given context
func OK(ctx string) *Response {
	return &Response{
		Key:     "ok",
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
