package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// act resolves handle, executes action against it via the adapter's
// dispatcher, and wraps the result into the named command's envelope.
func (rt *Runtime) act(command, handle string, action model.Action) (*model.Envelope, error) {
	if err := emptyToErr(handle, "handle"); err != nil {
		return nil, err
	}
	_, el, err := rt.resolveHandle(handle)
	if err != nil {
		return nil, err
	}
	if err := rt.Adapter.ExecuteAction(el.Native(), action); err != nil {
		return nil, err
	}
	return rt.Envelope(command, map[string]any{"handle": handle}), nil
}

func (rt *Runtime) Click(handle string) (*model.Envelope, error) {
	return rt.act("click", handle, model.NewClick())
}

func (rt *Runtime) DoubleClick(handle string) (*model.Envelope, error) {
	return rt.act("double-click", handle, model.NewDoubleClick())
}

func (rt *Runtime) TripleClick(handle string) (*model.Envelope, error) {
	return rt.act("triple-click", handle, model.NewTripleClick())
}

func (rt *Runtime) RightClick(handle string) (*model.Envelope, error) {
	return rt.act("right-click", handle, model.NewRightClick())
}

func (rt *Runtime) Expand(handle string) (*model.Envelope, error) {
	return rt.act("expand", handle, model.NewExpand())
}

func (rt *Runtime) Collapse(handle string) (*model.Envelope, error) {
	return rt.act("collapse", handle, model.NewCollapse())
}

func (rt *Runtime) Toggle(handle string) (*model.Envelope, error) {
	return rt.act("toggle", handle, model.NewToggle())
}

func (rt *Runtime) Check(handle string) (*model.Envelope, error) {
	return rt.act("check", handle, model.NewCheck())
}

func (rt *Runtime) Uncheck(handle string) (*model.Envelope, error) {
	return rt.act("uncheck", handle, model.NewUncheck())
}

func (rt *Runtime) SetValue(handle, value string) (*model.Envelope, error) {
	return rt.act("set-value", handle, model.NewSetValue(value))
}

func (rt *Runtime) Clear(handle string) (*model.Envelope, error) {
	return rt.act("clear", handle, model.NewClear())
}

func (rt *Runtime) SetFocus(handle string) (*model.Envelope, error) {
	return rt.act("set-focus", handle, model.NewSetFocus())
}

func (rt *Runtime) Select(handle, text string) (*model.Envelope, error) {
	if err := emptyToErr(text, "text"); err != nil {
		return nil, err
	}
	return rt.act("select", handle, model.NewSelect(text))
}

func (rt *Runtime) ScrollTo(handle string) (*model.Envelope, error) {
	return rt.act("scroll-to", handle, model.NewScrollTo())
}

func (rt *Runtime) Scroll(handle string, dir model.ScrollDirection, amount int) (*model.Envelope, error) {
	if amount <= 0 {
		amount = 1
	}
	return rt.act("scroll", handle, model.NewScroll(dir, amount))
}

func (rt *Runtime) TypeText(handle, text string) (*model.Envelope, error) {
	if handle == "" {
		// no target element: the caller wants raw keyboard input to
		// whatever currently holds focus.
		if err := rt.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewTypeText(text)); err != nil {
			return nil, err
		}
		return rt.Envelope("type-text", map[string]any{"text": text}), nil
	}
	return rt.act("type-text", handle, model.NewTypeText(text))
}
