// Package bot implements the conversation engine: a step-driven sales
// configuration flow with intent interrupts layered on top. The engine is a
// pure state transformer over State; session lookup, locking, and HTTP live
// elsewhere.
package bot

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/intent"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
)

// TurnEvent describes one classified turn for the analytics log.
type TurnEvent struct {
	Intent        string
	Message       string
	SelectedPanel string
	Purpose       string
	Snapshot      []byte
}

// ConfigEvent describes one saved configuration.
type ConfigEvent struct {
	Summary  string
	Snapshot []byte
}

// TurnLogger receives analytics events. Failures must never surface to the
// customer; the engine swallows them.
type TurnLogger interface {
	LogTurn(ctx context.Context, sessionID string, e TurnEvent) error
	LogConfiguration(ctx context.Context, sessionID string, e ConfigEvent) error
}

// Answerer answers free-form product questions, typically via an LLM.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Recorder receives engine metrics. The metrics package provides the
// Prometheus implementation and a no-op.
type Recorder interface {
	RecordTurn(intentName string)
	RecordSessionStarted()
	RecordConfigurationSaved()
	RecordValidationFailure(field string)
	RecordKnowledgeFallback(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordTurn(string)                    {}
func (nopRecorder) RecordSessionStarted()                {}
func (nopRecorder) RecordConfigurationSaved()            {}
func (nopRecorder) RecordValidationFailure(string)       {}
func (nopRecorder) RecordKnowledgeFallback(time.Duration) {}

// Engine drives the conversation.
type Engine struct {
	catalog    *catalog.Catalog
	classifier *intent.Classifier
	answerer   Answerer
	turnLog    TurnLogger
	recorder   Recorder
	logger     *logx.Logger
}

// NewEngine wires an engine. answerer and turnLog may be nil; recorder may be
// nil, in which case metrics are discarded.
func NewEngine(cat *catalog.Catalog, answerer Answerer, turnLog TurnLogger, recorder Recorder) *Engine {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Engine{
		catalog:    cat,
		classifier: intent.NewClassifier(cat),
		answerer:   answerer,
		turnLog:    turnLog,
		recorder:   recorder,
		logger:     logx.NewLogger("engine"),
	}
}

// turn carries the per-call context through the handler chain.
type turn struct {
	ctx       context.Context
	sessionID string
}

// Handle processes one inbound message against a session's state and returns
// the reply. The caller must hold the session's lock.
func (e *Engine) Handle(ctx context.Context, sessionID, message string, st *State) Reply {
	t := &turn{ctx: ctx, sessionID: sessionID}
	msg := trimmed(message)
	st.Flow.MessageCount++
	if st.Flow.MessageCount == 1 {
		e.recorder.RecordSessionStarted()
	}

	if msg == "" {
		return e.greet(st)
	}

	// A saved conversation restarts on the next real message.
	if st.Slots.Saved && st.Flow.CurrentStep == StepEnd {
		st.Reset()
		st.Flow.MessageCount = 1
		reply := e.greet(st)
		reply.Text = "Starting a new configuration.\n\n" + reply.Text
		return reply
	}

	it := e.classifier.Classify(msg)
	st.pushIntent(string(it))
	e.recorder.RecordTurn(string(it))
	e.logTurn(ctx, sessionID, msg, it, st)
	e.logger.Debug("session %s step=%s intent=%s", sessionID, st.Flow.CurrentStep, it)

	reply := e.route(t, msg, it, st)
	reply.Intent = string(it)
	reply.Step = st.Flow.CurrentStep
	reply.Done = st.Slots.Saved && st.Flow.CurrentStep == StepEnd
	return reply
}

// route applies the interrupt ladder, then the purpose shortcut, then the
// current step's handler, then the fallbacks.
func (e *Engine) route(t *turn, msg string, it intent.Intent, st *State) Reply {
	// The modify subsystem runs before the interrupt ladder: batch values like
	// "P4mm, 5" and requests like "modify panel" would otherwise be swallowed
	// by keyword intents.
	if st.Flow.CurrentStep == StepMultiMods {
		return e.handleMultiMods(msg, st)
	}
	if strings.Contains(strings.ToLower(msg), "modify") || st.Flow.CurrentStep == StepModifyOptions {
		return e.handleModifyOptions(msg, st)
	}

	switch it {
	case intent.SelectPanel:
		return e.handleSelectPanel(msg, st)
	case intent.Compare:
		return e.handleCompare(msg)
	case intent.Price:
		return e.handlePrice(msg)
	case intent.Support:
		return e.handleSupport()
	case intent.Panels:
		return e.handlePanels(t, msg, st)
	case intent.Guide:
		return e.handleGuide(msg, st)
	case intent.Knowledge:
		return e.handleKnowledge(t.ctx, msg)
	case intent.Controllers:
		return e.handleControllers()
	}

	// Purpose words advance the flow from anywhere ("studio" mid-greeting),
	// but never overwrite a purpose already on file from an unrelated answer
	// like a company name containing "mall".
	if _, matched := e.catalog.Purpose(msg); matched &&
		(st.Slots.Purpose == "" || st.Flow.CurrentStep == StepPurposeInput) {
		return e.handlePurpose(msg, st)
	}

	if h, ok := stepHandlers[st.Flow.CurrentStep]; ok {
		return h(e, t, msg, st)
	}

	if reply, ok := e.statefulFollowUp(st); ok {
		return reply
	}
	return e.generalFallback(t.ctx, msg)
}

// greet opens or reopens the conversation.
func (e *Engine) greet(st *State) Reply {
	if st.Flow.CurrentStep == StepGreeting {
		st.Flow.CurrentStep = StepPanelCategory
	}
	return buttonsReply(stepPrompt(StepGreeting), "", e.categoryButtons())
}

func (e *Engine) logTurn(ctx context.Context, sessionID, msg string, it intent.Intent, st *State) {
	if e.turnLog == nil {
		return
	}
	ev := TurnEvent{Intent: string(it), Message: msg}
	if st.Slots.Selected != nil {
		ev.SelectedPanel = st.Slots.Selected.Model
	}
	ev.Purpose = st.Slots.Purpose
	if snap, err := json.Marshal(st.Slots); err == nil {
		ev.Snapshot = snap
	}
	if err := e.turnLog.LogTurn(ctx, sessionID, ev); err != nil {
		e.logger.Warn("turn log failed for session %s: %v", sessionID, err)
	}
}

func (e *Engine) logConfiguration(ctx context.Context, sessionID, summary string, st *State) {
	if e.turnLog == nil {
		return
	}
	ev := ConfigEvent{Summary: summary}
	if snap, err := json.Marshal(st.Slots); err == nil {
		ev.Snapshot = snap
	}
	if err := e.turnLog.LogConfiguration(ctx, sessionID, ev); err != nil {
		e.logger.Warn("configuration log failed for session %s: %v", sessionID, err)
	}
}
