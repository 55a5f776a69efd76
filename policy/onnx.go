package policy

import (
	"fmt"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"

	"fxgym/env"
)

// DefaultHiddenSize matches the exported LSTM policy's hidden width.
const DefaultHiddenSize = 256

// ONNXConfig locates and shapes the exported recurrent policy. The
// export contract: inputs "obs" [1,ObsSize], "state_h" and "state_c"
// [1,1,hidden]; outputs "action_logits" [1,NumActions], "state_h_out"
// and "state_c_out" with the state shapes.
type ONNXConfig struct {
	ModelPath  string
	HiddenSize int // 0 = DefaultHiddenSize
}

// ONNX runs a recurrent policy exported to ONNX, carrying the LSTM
// hidden and cell state across Predict calls and choosing the argmax
// action. Not safe for concurrent use; one instance per environment.
type ONNX struct {
	session *ort.AdvancedSession
	obs     *ort.Tensor[float32]
	stateH  *ort.Tensor[float32]
	stateC  *ort.Tensor[float32]
	logits  *ort.Tensor[float32]
	outH    *ort.Tensor[float32]
	outC    *ort.Tensor[float32]
	hidden  int
}

// InitRuntime points the onnxruntime binding at the shared library.
// Call once per process before NewONNX.
func InitRuntime() error {
	libPath := "/usr/lib/libonnxruntime.so"
	switch runtime.GOOS {
	case "windows":
		libPath = "onnxruntime.dll"
	case "darwin":
		libPath = "libonnxruntime.dylib"
	}
	ort.SetSharedLibraryPath(libPath)
	return ort.InitializeEnvironment()
}

// NewONNX loads the exported policy. Tensors are allocated once and
// reused for every step.
func NewONNX(cfg ONNXConfig) (*ONNX, error) {
	hidden := cfg.HiddenSize
	if hidden <= 0 {
		hidden = DefaultHiddenSize
	}

	obs, err := ort.NewTensor(ort.NewShape(1, env.ObsSize), make([]float32, env.ObsSize))
	if err != nil {
		return nil, fmt.Errorf("policy: obs tensor: %w", err)
	}

	stateShape := ort.NewShape(1, 1, int64(hidden))
	stateH, err := ort.NewTensor(stateShape, make([]float32, hidden))
	if err != nil {
		obs.Destroy()
		return nil, fmt.Errorf("policy: state tensor: %w", err)
	}
	stateC, err := ort.NewTensor(stateShape, make([]float32, hidden))
	if err != nil {
		obs.Destroy()
		stateH.Destroy()
		return nil, fmt.Errorf("policy: state tensor: %w", err)
	}

	logits, err := ort.NewEmptyTensor[float32](ort.NewShape(1, env.NumActions))
	if err != nil {
		obs.Destroy()
		stateH.Destroy()
		stateC.Destroy()
		return nil, fmt.Errorf("policy: logits tensor: %w", err)
	}
	outH, err := ort.NewEmptyTensor[float32](stateShape)
	if err != nil {
		obs.Destroy()
		stateH.Destroy()
		stateC.Destroy()
		logits.Destroy()
		return nil, fmt.Errorf("policy: state output tensor: %w", err)
	}
	outC, err := ort.NewEmptyTensor[float32](stateShape)
	if err != nil {
		obs.Destroy()
		stateH.Destroy()
		stateC.Destroy()
		logits.Destroy()
		outH.Destroy()
		return nil, fmt.Errorf("policy: state output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{"obs", "state_h", "state_c"},
		[]string{"action_logits", "state_h_out", "state_c_out"},
		[]ort.Value{obs, stateH, stateC},
		[]ort.Value{logits, outH, outC}, nil)
	if err != nil {
		obs.Destroy()
		stateH.Destroy()
		stateC.Destroy()
		logits.Destroy()
		outH.Destroy()
		outC.Destroy()
		return nil, fmt.Errorf("policy: create session: %w", err)
	}

	return &ONNX{
		session: session,
		obs:     obs,
		stateH:  stateH,
		stateC:  stateC,
		logits:  logits,
		outH:    outH,
		outC:    outC,
		hidden:  hidden,
	}, nil
}

// Predict runs one inference step and feeds the returned recurrent
// state back in for the next call.
func (p *ONNX) Predict(obs env.Observation) (env.Action, error) {
	in := p.obs.GetData()
	for i, v := range obs {
		in[i] = float32(v)
	}

	if err := p.session.Run(); err != nil {
		return env.Hold, fmt.Errorf("policy: inference: %w", err)
	}

	copy(p.stateH.GetData(), p.outH.GetData())
	copy(p.stateC.GetData(), p.outC.GetData())

	logits := p.logits.GetData()
	best := 0
	for i := 1; i < len(logits); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	return env.Action(best), nil
}

// Reset zeroes the recurrent state for a new episode.
func (p *ONNX) Reset() {
	clear(p.stateH.GetData())
	clear(p.stateC.GetData())
}

// Close releases the session and its tensors.
func (p *ONNX) Close() {
	if p.session != nil {
		p.session.Destroy()
	}
	for _, t := range []*ort.Tensor[float32]{p.obs, p.stateH, p.stateC, p.logits, p.outH, p.outC} {
		if t != nil {
			t.Destroy()
		}
	}
}

var _ Policy = (*ONNX)(nil)
var _ Policy = (*Random)(nil)
