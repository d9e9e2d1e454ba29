package predictor

import (
	"boardgame/game/tictactoe"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnnxConfig(t *testing.T) {
	_, err := NewOnnx(OnnxConfig{ModelPath: "missing.onnx"})

	require.Error(t, err, "Board shape is required")
}

func TestOnnxPredict(t *testing.T) {
	modelPath := os.Getenv("TICTACTOE_ONNX_MODEL")
	if modelPath == "" {
		t.Skip("TICTACTOE_ONNX_MODEL not set")
	}

	o, err := NewOnnx(OnnxConfig{ModelPath: modelPath, Rows: 3, Cols: 3, Actions: tictactoe.Cells})
	require.NoError(t, err)
	defer o.Close()

	priors, value, err := o.Predict(tictactoe.New())

	require.NoError(t, err)
	require.Len(t, priors, tictactoe.Cells)
	require.GreaterOrEqual(t, value, -1.0)
	require.LessOrEqual(t, value, 1.0)
}
