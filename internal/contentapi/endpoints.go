package contentapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// ContactMessages reads every contact message in server order.
func (c *Client) ContactMessages(ctx context.Context) ([]content.ContactMessage, error) {
	var msgs []content.ContactMessage
	if err := c.Get(ctx, content.PathContactMessages, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// FormResponses reads the responses submitted for a form. A zero formID
// returns responses for every form.
func (c *Client) FormResponses(ctx context.Context, formID int) ([]content.FormResponse, error) {
	path := content.PathFormResponses
	if formID > 0 {
		path += "?" + url.Values{"form_id": {strconv.Itoa(formID)}}.Encode()
	}
	var responses []content.FormResponse
	if err := c.Get(ctx, path, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
