package murmur

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Outcome classifies what a send attempt did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // blank input, nothing happened
	OutcomeCommand                // a local command ran
	OutcomePending                // a request is in flight (Prepare only)
	OutcomeReplied                // the remote API answered
	OutcomeFailed                 // the request failed; an error message was appended
)

// Result describes the effect of Send, Prepare or Complete.
type Result struct {
	Outcome Outcome
	Command Command // set for OutcomeCommand
	Message Message // assistant message for OutcomeReplied and OutcomeFailed
	Err     error   // underlying failure for OutcomeFailed
}

// Display holds the view toggles driven by commands.
type Display struct {
	Zen      bool
	Inverted bool
}

// Turn is a single in-flight request created by Prepare.
type Turn struct {
	Request  ChatRequest
	User     Message
	ImageURL string // locally computed image URL, empty when no image intent
}

// Dispatcher runs one round trip per submitted message against a Client and
// records the outcome in a Conversation.
//
// Send is split into three phases so that a UI can keep every Conversation
// mutation on its own goroutine: Prepare and Complete mutate state, Exchange
// only performs the network call.
type Dispatcher struct {
	client   Client
	conv     *Conversation
	drafts   DraftStore
	images   ImageEndpoint
	logger   *slog.Logger
	onBusy   func(bool)
	display  Display
	inFlight *Turn
}

// DispatcherOption configures a [Dispatcher].
type DispatcherOption func(*Dispatcher)

// WithDraftStore sets the store cleared after an accepted send or command.
func WithDraftStore(s DraftStore) DispatcherOption {
	return func(d *Dispatcher) { d.drafts = s }
}

// WithImageEndpoint sets the image URL template used for image requests.
func WithImageEndpoint(e ImageEndpoint) DispatcherOption {
	return func(d *Dispatcher) { d.images = e }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithBusyHandler sets a callback invoked on every busy state change.
func WithBusyHandler(fn func(busy bool)) DispatcherOption {
	return func(d *Dispatcher) { d.onBusy = fn }
}

// NewDispatcher creates a Dispatcher sending through client and recording
// into conv.
func NewDispatcher(client Client, conv *Conversation, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		client: client,
		conv:   conv,
		drafts: nopDraftStore{},
		images: DefaultImageEndpoint(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Conversation returns the conversation the dispatcher records into.
func (d *Dispatcher) Conversation() *Conversation { return d.conv }

// Draft returns the draft store.
func (d *Dispatcher) Draft() DraftStore { return d.drafts }

// Display returns the current view toggles.
func (d *Dispatcher) Display() Display { return d.display }

// Busy reports whether a request is in flight.
func (d *Dispatcher) Busy() bool { return d.inFlight != nil }

// Send submits text and blocks until the remote API answers or fails.
func (d *Dispatcher) Send(ctx context.Context, text string) (Result, error) {
	turn, res, err := d.Prepare(text)
	if err != nil || turn == nil {
		return res, err
	}
	resp, err := d.Exchange(ctx, turn)
	return d.Complete(turn, resp, err)
}

// Prepare performs the synchronous part of a send. Blank input is ignored
// and recognized commands run locally; in both cases the returned Turn is
// nil. Otherwise the user message is appended, the dispatcher becomes busy
// and the returned Turn must be finished with Complete.
func (d *Dispatcher) Prepare(text string) (*Turn, Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Result{Outcome: OutcomeIgnored}, nil
	}
	if d.Busy() {
		return nil, Result{}, ErrBusy
	}
	if cmd, ok := ParseCommand(text); ok {
		d.clearDraft()
		return nil, d.Run(cmd), nil
	}

	user, err := d.conv.Append(Message{
		Role:   RoleUser,
		Text:   strings.TrimSpace(text),
		Status: StatusSent,
	})
	if err != nil {
		return nil, Result{}, fmt.Errorf("prepare: %w", err)
	}
	d.clearDraft()

	turn := &Turn{
		User: user,
		Request: ChatRequest{
			Message:        text,
			ConversationID: d.conv.SessionID(),
			GenerateImage:  IsImageRequest(text),
		},
	}
	if turn.Request.GenerateImage {
		turn.ImageURL = d.images.URL(ExtractPrompt(text))
	}
	d.setBusy(turn)
	d.logger.Debug("message prepared",
		"message_id", user.ID,
		"conversation_id", turn.Request.ConversationID,
		"generate_image", turn.Request.GenerateImage,
	)
	return turn, Result{Outcome: OutcomePending}, nil
}

// Exchange performs the network call for turn. It reads no dispatcher or
// conversation state, so it may run on any goroutine.
func (d *Dispatcher) Exchange(ctx context.Context, turn *Turn) (*ChatResponse, error) {
	return d.client.Chat(ctx, turn.Request)
}

// Complete records the result of Exchange. The busy state is cleared on
// every path, exactly once per turn.
func (d *Dispatcher) Complete(turn *Turn, resp *ChatResponse, chatErr error) (Result, error) {
	if turn == nil || d.inFlight != turn {
		return Result{}, ErrNoTurn
	}
	defer d.setBusy(nil)

	if chatErr != nil {
		d.logger.Warn("send failed", "message_id", turn.User.ID, "error", chatErr)
		msg, err := d.conv.Append(Message{
			Role:   RoleAssistant,
			Text:   FailureReply,
			Status: StatusError,
		})
		if err != nil {
			return Result{}, fmt.Errorf("complete: %w", err)
		}
		return Result{Outcome: OutcomeFailed, Message: msg, Err: chatErr}, nil
	}

	if resp != nil && d.conv.SetSessionID(resp.ConversationID) {
		d.logger.Info("session started", "conversation_id", resp.ConversationID)
	}

	image := turn.ImageURL
	if image == "" && resp != nil {
		image = resp.Image
	}
	msg, err := d.conv.Append(Message{
		Role:     RoleAssistant,
		Text:     resp.Text(),
		Status:   StatusSent,
		ImageURL: image,
	})
	if err != nil {
		return Result{}, fmt.Errorf("complete: %w", err)
	}
	d.logger.Debug("reply received", "message_id", msg.ID, "has_image", msg.HasImage())
	return Result{Outcome: OutcomeReplied, Message: msg}, nil
}

// Run performs the local effect of cmd.
func (d *Dispatcher) Run(cmd Command) Result {
	switch cmd {
	case CommandClear:
		d.conv.Reset()
	case CommandZen:
		d.display.Zen = !d.display.Zen
	case CommandInvert:
		d.display.Inverted = !d.display.Inverted
	case CommandHelp:
		// The only error Append can return is a duplicate ID, which a
		// fresh ID cannot produce.
		_, _ = d.conv.Append(Message{Role: RoleAssistant, Text: HelpText})
	}
	d.logger.Debug("command", "command", string(cmd))
	return Result{Outcome: OutcomeCommand, Command: cmd}
}

func (d *Dispatcher) setBusy(t *Turn) {
	d.inFlight = t
	if d.onBusy != nil {
		d.onBusy(t != nil)
	}
}

func (d *Dispatcher) clearDraft() {
	if err := d.drafts.Clear(); err != nil {
		d.logger.Warn("clear draft", "error", err)
	}
}
