package predictor

import (
	"boardgame/game"
	"fmt"
	"os"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	DefaultBatchSize    = 16
	DefaultBatchTimeout = 1 * time.Millisecond
)

// OnnxConfig describes a model with one input named "input" of shape
// [batch, 2, Rows, Cols] and outputs "policy" [batch, Actions] and
// "value" [batch, 1]
type OnnxConfig struct {
	ModelPath    string
	Rows         int
	Cols         int
	Actions      int
	BatchSize    int
	BatchTimeout time.Duration
}

type inferenceRequest struct {
	input    []float32
	respChan chan inferenceResponse
}

type inferenceResponse struct {
	policy []float64
	value  float64
	err    error
}

// Onnx runs a policy/value model with ONNX Runtime. Concurrent Predict calls
// are queued and batched by a single goroutine.
type Onnx struct {
	session      *ort.DynamicAdvancedSession
	requestsChan chan inferenceRequest
	done         chan struct{}
	stopped      chan struct{}
	closeOnce    sync.Once
	cfg          OnnxConfig
}

var ortInitOnce sync.Once
var ortInitErr error

func NewOnnx(cfg OnnxConfig) (*Onnx, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 || cfg.Actions <= 0 {
		return nil, fmt.Errorf("invalid model shape: %dx%d board, %d actions", cfg.Rows, cfg.Cols, cfg.Actions)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}

	if p := os.Getenv("ORT_SHARED_LIBRARY_PATH"); p != "" {
		ort.SetSharedLibraryPath(p)
	}
	ortInitOnce.Do(func() {
		ortInitErr = ort.InitializeEnvironment()
	})
	if ortInitErr != nil {
		return nil, fmt.Errorf("failed to init ort: %w", ortInitErr)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, err
	}
	defer options.Destroy()

	// One thread per session
	options.SetIntraOpNumThreads(1)
	options.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, []string{"input"}, []string{"policy", "value"}, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	o := &Onnx{
		session:      session,
		requestsChan: make(chan inferenceRequest, cfg.BatchSize*2),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
		cfg:          cfg,
	}
	go o.batchLoop()
	return o, nil
}

// Close stops batching and releases the session
func (o *Onnx) Close() error {
	var err error
	o.closeOnce.Do(func() {
		close(o.done)
		<-o.stopped
		err = o.session.Destroy()
	})
	return err
}

func (o *Onnx) Predict(state game.State) ([]float64, float64, error) {
	observable, ok := state.(game.Observable)
	if !ok {
		return nil, 0, fmt.Errorf("state %T cannot be observed", state)
	}
	planes := observable.Observe()
	if len(planes) != 2*o.cfg.Rows*o.cfg.Cols {
		return nil, 0, fmt.Errorf("observation has %d values, model expects %d", len(planes), 2*o.cfg.Rows*o.cfg.Cols)
	}

	input := make([]float32, len(planes))
	for i, v := range planes {
		input[i] = float32(v)
	}

	select {
	case <-o.done:
		return nil, 0, ErrClosed
	default:
	}

	respChan := make(chan inferenceResponse, 1)
	select {
	case o.requestsChan <- inferenceRequest{input: input, respChan: respChan}:
	case <-o.done:
		return nil, 0, ErrClosed
	}

	select {
	case resp := <-respChan:
		return resp.policy, resp.value, resp.err
	case <-o.stopped:
		return nil, 0, ErrClosed
	}
}

func (o *Onnx) batchLoop() {
	defer close(o.stopped)

	inputSize := 2 * o.cfg.Rows * o.cfg.Cols
	batchInput := make([]float32, 0, o.cfg.BatchSize*inputSize)
	requests := make([]inferenceRequest, 0, o.cfg.BatchSize)

	ticker := time.NewTicker(o.cfg.BatchTimeout)
	defer ticker.Stop()

	for {
		select {
		case req := <-o.requestsChan:
			requests = append(requests, req)
			batchInput = append(batchInput, req.input...)

			if len(requests) >= o.cfg.BatchSize {
				o.runBatch(requests, batchInput)
				requests = requests[:0]
				batchInput = batchInput[:0]
			}
		case <-ticker.C:
			if len(requests) > 0 {
				o.runBatch(requests, batchInput)
				requests = requests[:0]
				batchInput = batchInput[:0]
			}
		case <-o.done:
			o.failBatch(requests, ErrClosed)
			return
		}
	}
}

func (o *Onnx) runBatch(requests []inferenceRequest, batchInput []float32) {
	batch := int64(len(requests))

	inputTensor, err := ort.NewTensor(ort.NewShape(batch, 2, int64(o.cfg.Rows), int64(o.cfg.Cols)), batchInput)
	if err != nil {
		o.failBatch(requests, err)
		return
	}
	defer inputTensor.Destroy()

	policyTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(batch, int64(o.cfg.Actions)))
	if err != nil {
		o.failBatch(requests, err)
		return
	}
	defer policyTensor.Destroy()

	valueTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(batch, 1))
	if err != nil {
		o.failBatch(requests, err)
		return
	}
	defer valueTensor.Destroy()

	err = o.session.Run([]ort.Value{inputTensor}, []ort.Value{policyTensor, valueTensor})
	if err != nil {
		o.failBatch(requests, err)
		return
	}

	policyData := policyTensor.GetData()
	valueData := valueTensor.GetData()
	for i, req := range requests {
		policy := make([]float64, o.cfg.Actions)
		for j := range policy {
			policy[j] = float64(policyData[i*o.cfg.Actions+j])
		}
		req.respChan <- inferenceResponse{policy: policy, value: float64(valueData[i])}
	}
}

func (o *Onnx) failBatch(requests []inferenceRequest, err error) {
	for _, req := range requests {
		req.respChan <- inferenceResponse{err: err}
	}
}
