package tools

import "github.com/lahfir/agent-desktop-sub000/internal/model"

func (rt *Runtime) ClipboardGet() (*model.Envelope, error) {
	text, err := rt.Adapter.ReadClipboard()
	if err != nil {
		return nil, err
	}
	return rt.Envelope("clipboard-get", map[string]any{"text": text}), nil
}

func (rt *Runtime) ClipboardSet(text string) (*model.Envelope, error) {
	if err := rt.Adapter.WriteClipboard(text); err != nil {
		return nil, err
	}
	return rt.Envelope("clipboard-set", map[string]any{"text": text}), nil
}

func (rt *Runtime) ClipboardClear() (*model.Envelope, error) {
	if err := rt.Adapter.ClearClipboard(); err != nil {
		return nil, err
	}
	return rt.Envelope("clipboard-clear", nil), nil
}
