package agent

import (
	"encoding/json"
	"testing"
)

func TestMarshalEvent_TaggedEnvelope(t *testing.T) {
	data, err := MarshalEvent(StepEvent{Step: 3, MaxSteps: 15})
	if err != nil {
		t.Fatalf("MarshalEvent() error = %v", err)
	}

	var envelope struct {
		Type string `json:"type"`
		Data struct {
			Step     int `json:"step"`
			MaxSteps int `json:"max_steps"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if envelope.Type != "Step" {
		t.Errorf("type = %q", envelope.Type)
	}
	if envelope.Data.Step != 3 || envelope.Data.MaxSteps != 15 {
		t.Errorf("data = %+v", envelope.Data)
	}
}

func TestMarshalEvent_DoneHasNoData(t *testing.T) {
	data, err := MarshalEvent(DoneEvent{})
	if err != nil {
		t.Fatalf("MarshalEvent() error = %v", err)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if envelope["type"] != "Done" {
		t.Errorf("type = %v", envelope["type"])
	}
	if _, ok := envelope["data"]; ok {
		t.Error("Done event should not carry data")
	}
}

func TestEmit_NilAndFullChannels(t *testing.T) {
	// Nil channel: no-op.
	emit(nil, DoneEvent{})

	// Full channel: event dropped, no block.
	ch := make(chan Event, 1)
	emit(ch, StepEvent{Step: 1, MaxSteps: 15})
	emit(ch, StepEvent{Step: 2, MaxSteps: 15})

	ev := <-ch
	step, ok := ev.(StepEvent)
	if !ok || step.Step != 1 {
		t.Errorf("buffered event = %#v, want first step", ev)
	}
	select {
	case ev := <-ch:
		t.Errorf("unexpected second event: %#v", ev)
	default:
	}
}
