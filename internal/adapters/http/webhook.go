package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/pkg/metrics"
)

const helpText = `Text me a place or address to see a map. Then:
north/south/east/west (or up/down/left/right) to pan,
in/out to zoom,
"to: somewhere" for turn-by-turn directions,
"next" for the next page of directions.`

// WebhookHandler processes one inbound message. The form carries From (the
// user key) and Body. Replies for map views are synchronous TwiML; direction
// pages are sent out-of-band by the delivery engine.
func WebhookHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := c.FormValue("From")
		body := c.FormValue("Body")
		if from == "" {
			return fiber.NewError(fiber.StatusBadRequest, "From is required")
		}

		ctx := c.UserContext()

		// A continue reply only means something while pages are pending;
		// otherwise it falls through and geocodes like any other text.
		if domain.IsContinue(body) {
			handled, err := deps.Delivery.RequestContinuation(ctx, from)
			if err != nil {
				return webhookError(c, err)
			}
			if handled {
				metrics.InboundMessages.WithLabelValues("continue").Inc()
				return replyNothing(c)
			}
		}

		inbound := domain.Classify(body)
		metrics.InboundMessages.WithLabelValues(inbound.Kind.String()).Inc()

		switch inbound.Kind {
		case domain.KindHelp:
			return replyText(c, helpText)

		case domain.KindNavigation:
			state, err := deps.Locations.Move(ctx, from, inbound.Command)
			if err != nil {
				return webhookError(c, err)
			}
			return replyMedia(c, deps.Images.MapURL(state.Point(), state.Zoom))

		case domain.KindDestination:
			if err := deps.Directions.Start(ctx, from, inbound.Query); err != nil {
				return webhookError(c, err)
			}
			// First page already sent through the messenger.
			return replyNothing(c)

		default: // free-text location
			state, err := deps.Locations.Lookup(ctx, from, inbound.Query)
			if err != nil {
				return webhookError(c, err)
			}
			return replyMedia(c, deps.Images.MapURL(state.Point(), state.Zoom))
		}
	}
}

// webhookError maps the error taxonomy onto replies: user errors become
// guidance, upstream errors a generic miss, storage errors a 500 so the
// carrier retries later.
func webhookError(c *fiber.Ctx, err error) error {
	var userErr *domain.UserInputError
	if errors.As(err, &userErr) {
		return replyText(c, userErr.Msg)
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		LoggerFromCtx(c.UserContext()).Warn("upstream failure", "backend", upstreamErr.Backend, "error", err)
		return replyText(c, "Sorry, I couldn't find that. Try something else?")
	}

	LoggerFromCtx(c.UserContext()).Error("webhook failure", "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "internal error")
}
