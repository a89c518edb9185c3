package service

// EventPublisher pushes realtime events to connected clients. The websocket
// hub implements it; tests substitute a recorder.
type EventPublisher interface {
	Publish(event string, data interface{})
}
