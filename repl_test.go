package nutriguide

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAssistant struct {
	answers map[string]string
	asked   []string
}

func (a *scriptedAssistant) Ask(ctx context.Context, text string) (string, error) {
	a.asked = append(a.asked, text)
	if answer, ok := a.answers[text]; ok {
		return answer, nil
	}
	return "", errors.New("ollama HTTP 503: busy")
}

func TestRunREPL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantAsked []string
		wantOut   []string
	}{
		{
			name:      "answers until exit",
			input:     "is soda ok?\n\n  X  \nnever asked\n",
			wantAsked: []string{"is soda ok?"},
			wantOut:   []string{"NutriGuide:\nNo.\n"},
		},
		{
			name:      "stops at eof",
			input:     "is soda ok?",
			wantAsked: []string{"is soda ok?"},
		},
		{
			name:      "failed turn does not stop the loop",
			input:     "broken\nis soda ok?\nexit\n",
			wantAsked: []string{"broken", "is soda ok?"},
			wantOut:   []string{"Error: ollama HTTP 503: busy", "NutriGuide:\nNo.\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &scriptedAssistant{answers: map[string]string{"is soda ok?": "No."}}
			var out bytes.Buffer

			err := RunREPL(context.Background(), strings.NewReader(tt.input), &out, assistant)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAsked, assistant.asked)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestDumpTurnLogger(t *testing.T) {
	var out bytes.Buffer
	var buf bytes.Buffer
	next := NewFileTurnLogger(&buf)
	logger := NewDumpTurnLogger(next, &out)

	require.NoError(t, logger.LogTurn(TurnLog{TurnID: "abc", UserInput: "hi"}))
	assert.Contains(t, out.String(), "abc")
	assert.Contains(t, out.String(), "UserInput")

	require.NoError(t, next.Flush())
	assert.Contains(t, buf.String(), `"turn_id": "abc"`)
}
