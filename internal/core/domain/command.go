package domain

import (
	"fmt"
	"strings"
)

// Command is a map navigation command parsed from an inbound message.
type Command int

const (
	CommandNorth Command = iota
	CommandSouth
	CommandEast
	CommandWest
	CommandZoomIn
	CommandZoomOut

	commandCount
)

func (c Command) String() string {
	switch c {
	case CommandNorth:
		return "north"
	case CommandSouth:
		return "south"
	case CommandEast:
		return "east"
	case CommandWest:
		return "west"
	case CommandZoomIn:
		return "zoom_in"
	case CommandZoomOut:
		return "zoom_out"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Keyword tables. Many keywords map to one command; a match requires the
// whole message to equal the keyword (case-insensitive), so a location query
// that merely contains a directional word is never misclassified.
var commandKeywords = map[string]Command{
	"north":    CommandNorth,
	"up":       CommandNorth,
	"south":    CommandSouth,
	"down":     CommandSouth,
	"east":     CommandEast,
	"right":    CommandEast,
	"west":     CommandWest,
	"left":     CommandWest,
	"in":       CommandZoomIn,
	"zoom in":  CommandZoomIn,
	"out":      CommandZoomOut,
	"zoom out": CommandZoomOut,
}

var helpKeywords = map[string]bool{
	"help":     true,
	"commands": true,
	"?":        true,
}

var continueKeywords = map[string]bool{
	"next": true,
	"more": true,
}

const destinationPrefix = "to:"

func init() {
	// Every table value must be a defined variant; catches a bad edit to the
	// keyword map before it can misroute messages.
	for kw, cmd := range commandKeywords {
		if cmd < 0 || cmd >= commandCount {
			panic(fmt.Sprintf("keyword %q maps to undefined command %d", kw, int(cmd)))
		}
	}
}

// Kind classifies an inbound message body.
type Kind int

const (
	KindNavigation Kind = iota
	KindDestination
	KindHelp
	KindLocation
)

func (k Kind) String() string {
	switch k {
	case KindNavigation:
		return "navigation"
	case KindDestination:
		return "destination"
	case KindHelp:
		return "help"
	}
	return "location"
}

// Inbound is a classified message. Command is set for KindNavigation, Query
// holds the destination for KindDestination and the raw body for
// KindLocation.
type Inbound struct {
	Kind    Kind
	Command Command
	Query   string
}

// Classify maps a message body to exactly one inbound kind. Every input
// lands somewhere: anything that is not a command, a to:<destination>
// request, or a help keyword is a free-text location query.
func Classify(body string) Inbound {
	trimmed := strings.TrimSpace(body)
	lower := strings.ToLower(trimmed)

	if cmd, ok := commandKeywords[lower]; ok {
		return Inbound{Kind: KindNavigation, Command: cmd}
	}
	if strings.HasPrefix(lower, destinationPrefix) {
		dest := strings.TrimSpace(trimmed[len(destinationPrefix):])
		return Inbound{Kind: KindDestination, Query: dest}
	}
	if helpKeywords[lower] {
		return Inbound{Kind: KindHelp}
	}
	return Inbound{Kind: KindLocation, Query: trimmed}
}

// IsContinue reports whether a message is a "send the next page" reply.
// Only meaningful when the user has direction pages pending; the webhook
// checks the queue before honoring it.
func IsContinue(body string) bool {
	return continueKeywords[strings.ToLower(strings.TrimSpace(body))]
}
