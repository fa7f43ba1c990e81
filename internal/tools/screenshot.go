package tools

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"
	"image/png"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// Screenshot captures a screen, the full virtual desktop, or a single
// window (per target) and returns it base64-encoded in the requested
// format, defaulting to PNG.
func (rt *Runtime) Screenshot(target, windowID, format string, screenIndex int) (*model.Envelope, error) {
	kind, err := parseScreenshotTarget(target, windowID)
	if err != nil {
		return nil, err
	}
	buf, err := rt.Adapter.Screenshot(adapter.ScreenshotTarget{
		Kind:        kind,
		ScreenIndex: screenIndex,
		WindowID:    windowID,
	})
	if err != nil {
		return nil, err
	}

	var encoded bytes.Buffer
	outFormat := toLower(format)
	if outFormat == "" {
		outFormat = string(buf.Format)
	}
	if outFormat == "" {
		outFormat = string(adapter.ImagePNG)
	}
	switch outFormat {
	case string(adapter.ImageJPG), "jpeg":
		if err := jpeg.Encode(&encoded, buf.Image, &jpeg.Options{Quality: 90}); err != nil {
			return nil, desktoperr.Newf(desktoperr.ActionFailed, "encode screenshot as jpeg: %v", err)
		}
		outFormat = string(adapter.ImageJPG)
	default:
		if err := png.Encode(&encoded, buf.Image); err != nil {
			return nil, desktoperr.Newf(desktoperr.ActionFailed, "encode screenshot as png: %v", err)
		}
		outFormat = string(adapter.ImagePNG)
	}

	bounds := buf.Image.Bounds()
	return rt.Envelope("screenshot", map[string]any{
		"format": outFormat,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"data":   base64.StdEncoding.EncodeToString(encoded.Bytes()),
	}), nil
}

func parseScreenshotTarget(target, windowID string) (adapter.ScreenshotTargetKind, error) {
	switch toLower(target) {
	case "", "screen":
		return adapter.ScreenshotScreen, nil
	case "full_screen", "full-screen", "desktop":
		return adapter.ScreenshotFullScreen, nil
	case "window":
		if err := emptyToErr(windowID, "window_id"); err != nil {
			return "", err
		}
		return adapter.ScreenshotWindow, nil
	default:
		return "", desktoperr.Newf(desktoperr.InvalidArgs, "unknown screenshot target %q", target)
	}
}
