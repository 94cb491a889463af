package protocol

import "encoding/json"

// Kind is the value of the "type" discriminator carried by every message.
type Kind string

// Message kinds. Welcome, join and leave are sent only by the server; the
// others name both the client request and the server relay.
const (
	// KindWelcome greets a newly connected participant with its identity.
	KindWelcome Kind = "welcome"
	// KindJoin announces a new participant.
	KindJoin Kind = "join"
	// KindLeave announces a departed participant.
	KindLeave Kind = "leave"
	// KindCursor carries a pointer position.
	KindCursor Kind = "cursor"
	// KindReaction carries an emoji reaction.
	KindReaction Kind = "reaction"
	// KindFirework carries a firework burst.
	KindFirework Kind = "firework"
	// KindName carries a display name change.
	KindName Kind = "name"
	// KindPrivateMessage carries a text for a single participant.
	KindPrivateMessage Kind = "private_message"
)

// Inbound is a message sent by a client. The set of implementations is closed.
type Inbound interface {
	Kind() Kind
	inbound()
}

// Cursor reports the sender's pointer position.
type Cursor struct {
	X Coord `json:"x"`
	Y Coord `json:"y"`
}

// Reaction places an emoji at a point on the surface.
type Reaction struct {
	X     Coord  `json:"x"`
	Y     Coord  `json:"y"`
	Emoji string `json:"emoji"`
}

// Firework launches a firework burst at a point on the surface.
type Firework struct {
	X Coord `json:"x"`
	Y Coord `json:"y"`
}

// Rename asks for the sender's display name to change.
type Rename struct {
	Name string `json:"name"`
}

// PrivateMessage carries a text addressed to a single participant.
type PrivateMessage struct {
	TargetUserID string `json:"targetUserId"`
	Message      string `json:"message"`
}

func (Cursor) Kind() Kind         { return KindCursor }
func (Reaction) Kind() Kind       { return KindReaction }
func (Firework) Kind() Kind       { return KindFirework }
func (Rename) Kind() Kind         { return KindName }
func (PrivateMessage) Kind() Kind { return KindPrivateMessage }

func (Cursor) inbound()         {}
func (Reaction) inbound()       {}
func (Firework) inbound()       {}
func (Rename) inbound()         {}
func (PrivateMessage) inbound() {}

// Outbound is a message sent by the server.
type Outbound interface {
	Kind() Kind
}

// Welcome is sent once, to a newly connected participant only.
type Welcome struct {
	Type   Kind   `json:"type"`
	UserID string `json:"userId"`
	Color  string `json:"color"`
	Name   string `json:"name"`
}

// Join announces a new participant to everyone else.
type Join struct {
	Type   Kind   `json:"type"`
	UserID string `json:"userId"`
	Color  string `json:"color"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// Leave announces a departed participant to the ones that remain.
type Leave struct {
	Type   Kind   `json:"type"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// CursorMoved relays a participant's clamped cursor position.
type CursorMoved struct {
	Type   Kind    `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
	Name   string  `json:"name"`
}

// ReactionSent relays an accepted emoji reaction.
type ReactionSent struct {
	Type   Kind    `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Emoji  string  `json:"emoji"`
	Name   string  `json:"name"`
}

// FireworkLaunched relays a firework burst.
type FireworkLaunched struct {
	Type   Kind    `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Name   string  `json:"name"`
}

// Renamed announces an accepted name change to every participant.
type Renamed struct {
	Type    Kind   `json:"type"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	OldName string `json:"oldName"`
}

// PrivateDelivery is the copy of a private message handed to its target.
type PrivateDelivery struct {
	Type    Kind   `json:"type"`
	Message string `json:"message"`
}

func (Welcome) Kind() Kind          { return KindWelcome }
func (Join) Kind() Kind             { return KindJoin }
func (Leave) Kind() Kind            { return KindLeave }
func (CursorMoved) Kind() Kind      { return KindCursor }
func (ReactionSent) Kind() Kind     { return KindReaction }
func (FireworkLaunched) Kind() Kind { return KindFirework }
func (Renamed) Kind() Kind          { return KindName }
func (PrivateDelivery) Kind() Kind  { return KindPrivateMessage }

// NewWelcome builds the welcome sent to a participant that just connected.
func NewWelcome(userID, color, name string) Welcome {
	return Welcome{Type: KindWelcome, UserID: userID, Color: color, Name: name}
}

// NewJoin builds the join announcement; count includes the newcomer.
func NewJoin(userID, color, name string, count int) Join {
	return Join{Type: KindJoin, UserID: userID, Color: color, Name: name, Count: count}
}

// NewLeave builds the leave announcement; count excludes the departed participant.
func NewLeave(userID, name string, count int) Leave {
	return Leave{Type: KindLeave, UserID: userID, Name: name, Count: count}
}

// NewCursorMoved builds a cursor relay from already clamped coordinates.
func NewCursorMoved(userID string, x, y float64, color, name string) CursorMoved {
	return CursorMoved{Type: KindCursor, UserID: userID, X: x, Y: y, Color: color, Name: name}
}

// NewReactionSent builds a reaction relay from already clamped coordinates.
func NewReactionSent(userID string, x, y float64, emoji, name string) ReactionSent {
	return ReactionSent{Type: KindReaction, UserID: userID, X: x, Y: y, Emoji: emoji, Name: name}
}

// NewFireworkLaunched builds a firework relay from already clamped coordinates.
func NewFireworkLaunched(userID string, x, y float64, name string) FireworkLaunched {
	return FireworkLaunched{Type: KindFirework, UserID: userID, X: x, Y: y, Name: name}
}

// NewRenamed builds the name change announcement.
func NewRenamed(userID, name, oldName string) Renamed {
	return Renamed{Type: KindName, UserID: userID, Name: name, OldName: oldName}
}

// NewPrivateDelivery builds the copy of a private message handed to its target.
func NewPrivateDelivery(message string) PrivateDelivery {
	return PrivateDelivery{Type: KindPrivateMessage, Message: message}
}

// Encode serializes an outbound message into a single JSON document.
func Encode(msg Outbound) ([]byte, error) {
	return json.Marshal(msg)
}
