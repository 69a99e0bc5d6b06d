package http

import (
	"encoding/xml"

	"github.com/gofiber/fiber/v2"
)

// TwiML response rendering for synchronous webhook replies. Direction pages
// go out through the REST messenger instead; the webhook answers those with
// an empty response.

type twimlResponse struct {
	XMLName  xml.Name       `xml:"Response"`
	Messages []twimlMessage `xml:"Message,omitempty"`
}

type twimlMessage struct {
	Body  string   `xml:"Body,omitempty"`
	Media []string `xml:"Media,omitempty"`
}

func renderTwiML(c *fiber.Ctx, resp twimlResponse) error {
	out, err := xml.Marshal(resp)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.SendString(xml.Header + string(out))
}

// replyText answers with a single text message.
func replyText(c *fiber.Ctx, body string) error {
	return renderTwiML(c, twimlResponse{Messages: []twimlMessage{{Body: body}}})
}

// replyMedia answers with a single media message.
func replyMedia(c *fiber.Ctx, mediaURL string) error {
	return renderTwiML(c, twimlResponse{Messages: []twimlMessage{{Media: []string{mediaURL}}}})
}

// replyNothing acknowledges the inbound message without an immediate reply.
func replyNothing(c *fiber.Ctx) error {
	return renderTwiML(c, twimlResponse{})
}
