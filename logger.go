package nutriguide

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TurnLogger records what happened during a single user turn.
type TurnLogger interface {
	LogTurn(turn TurnLog) error
}

// NewTurnLogFilePath returns a file path based on a cleaned up model name or id to make easier to identify specific logs produced with various models.
func NewTurnLogFilePath(model string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.NewReplacer(":", "_", "/", "_").Replace(strings.ToLower(model)),
	)
}

// TurnLog represents one user turn through the router
type TurnLog struct {
	TurnID      string       `json:"turn_id"`
	Timestamp   time.Time    `json:"timestamp"`
	UserInput   string       `json:"user_input"`
	FirstReply  string       `json:"first_reply,omitempty"`
	ToolCall    *ToolCallLog `json:"tool_call,omitempty"`
	SecondReply string       `json:"second_reply,omitempty"`
	FinalAnswer string       `json:"final_answer,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// NewTurnLog starts a log entry with a fresh turn id.
func NewTurnLog(input string) TurnLog {
	return TurnLog{TurnID: uuid.NewString(), Timestamp: time.Now(), UserInput: input}
}

// ToolCallLog represents the tool dispatched within a turn
type ToolCallLog struct {
	Name   string         `json:"name"`
	Input  map[string]any `json:"input"`
	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// FileTurnLogger logs to a file, accumulating turns and flushing at the end
type FileTurnLogger struct {
	mu     sync.Mutex
	turns  []TurnLog
	writer io.Writer
}

// NewFileTurnLogger creates a new file-based turn logger
func NewFileTurnLogger(writer io.Writer) *FileTurnLogger {
	return &FileTurnLogger{
		turns:  make([]TurnLog, 0),
		writer: writer,
	}
}

// LogTurn logs a turn to the buffer (does not flush immediately)
func (l *FileTurnLogger) LogTurn(turn TurnLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, turn)
	return nil
}

// Flush flushes all accumulated turns to the writer
func (l *FileTurnLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"chat_session": map[string]any{
			"timestamp": time.Now(),
			"turns":     l.turns,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal turn log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write turn log: %w", err)
	}

	// Clear the buffer after successful write
	l.turns = l.turns[:0]
	return nil
}

// NoOpTurnLogger is a logger that discards all log entries
type NoOpTurnLogger struct{}

func NewNoOpTurnLogger() *NoOpTurnLogger {
	return &NoOpTurnLogger{}
}

func (nop *NoOpTurnLogger) LogTurn(turn TurnLog) error {
	return nil
}

// StdoutTurnLogger logs each turn as a JSON line (for Lambda/CloudWatch)
type StdoutTurnLogger struct {
	out io.Writer
}

func NewStdoutTurnLogger() *StdoutTurnLogger {
	return &StdoutTurnLogger{out: os.Stdout}
}

// LogTurn writes the turn as a single JSON line
func (l *StdoutTurnLogger) LogTurn(turn TurnLog) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}

// DumpTurnLogger pretty-prints every turn to out before handing it to next.
type DumpTurnLogger struct {
	next TurnLogger
	out  io.Writer
}

func NewDumpTurnLogger(next TurnLogger, out io.Writer) *DumpTurnLogger {
	if next == nil {
		next = NewNoOpTurnLogger()
	}
	return &DumpTurnLogger{next: next, out: out}
}

func (l *DumpTurnLogger) LogTurn(turn TurnLog) error {
	fmt.Fprint(l.out, Sdump(turn))
	return l.next.LogTurn(turn)
}
