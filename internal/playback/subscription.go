package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StatusChanged    <-chan Status
	TrackChanged     <-chan TrackChange
	QueueChanged     <-chan QueueChange
	ModeChanged      <-chan ModeChange
	CountdownChanged <-chan CountdownChange
	Ended            <-chan EndedEvent
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	statusCh    chan Status
	trackCh     chan TrackChange
	queueCh     chan QueueChange
	modeCh      chan ModeChange
	countdownCh chan CountdownChange
	endedCh     chan EndedEvent
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		statusCh:    make(chan Status, eventBufferSize),
		trackCh:     make(chan TrackChange, eventBufferSize),
		queueCh:     make(chan QueueChange, eventBufferSize),
		modeCh:      make(chan ModeChange, eventBufferSize),
		countdownCh: make(chan CountdownChange, eventBufferSize),
		endedCh:     make(chan EndedEvent, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.TrackChanged = s.trackCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.CountdownChanged = s.countdownCh
	s.Ended = s.endedCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e on ch without blocking; events are dropped when the
// subscriber falls behind.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendStatus(e Status)             { send(s.statusCh, e) }
func (s *Subscription) sendTrack(e TrackChange)         { send(s.trackCh, e) }
func (s *Subscription) sendQueue(e QueueChange)         { send(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)           { send(s.modeCh, e) }
func (s *Subscription) sendCountdown(e CountdownChange) { send(s.countdownCh, e) }
func (s *Subscription) sendEnded(e EndedEvent)          { send(s.endedCh, e) }
func (s *Subscription) sendError(e ErrorEvent)          { send(s.errorCh, e) }
