package viewport

// InputType discriminates the raw event a pointer sample came from.
type InputType string

const (
	InputMouseDown  InputType = "mousedown"
	InputMouseMove  InputType = "mousemove"
	InputMouseUp    InputType = "mouseup"
	InputTouchStart InputType = "touchstart"
	InputTouchMove  InputType = "touchmove"
	InputTouchEnd   InputType = "touchend"
)

// PointerSample is a pointer position in client (screen) coordinates.
type PointerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointerEvent is a mouse or touch event as delivered by the page.
type PointerEvent struct {
	Input   InputType       `json:"input"`
	ClientX float64         `json:"clientX"`
	ClientY float64         `json:"clientY"`
	Touches []PointerSample `json:"touches,omitempty"`
}

// Sample unifies mouse and touch input into one position. Touch start and move
// read the first touch point; everything else reads the client coordinates.
// ok is false for a touch event without touch points.
func Sample(ev PointerEvent) (s PointerSample, ok bool) {
	switch ev.Input {
	case InputTouchStart, InputTouchMove:
		if len(ev.Touches) == 0 {
			return PointerSample{}, false
		}
		return ev.Touches[0], true
	default:
		return PointerSample{X: ev.ClientX, Y: ev.ClientY}, true
	}
}
