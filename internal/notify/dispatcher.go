package notify

import "github.com/rs/zerolog"

type Event struct {
	RecipientID   uint
	Email         string
	Type          string
	Title         string
	Message       string
	RelatedEntity string
	RelatedID     *uint
	TargetRoles   string
	Metadata      any
}

// Dispatcher delivers notifications off the request path. Delivery is
// fire-and-forget: a full queue drops the event, a failed write is logged,
// and neither ever fails the triggering request.
type Dispatcher struct {
	writer *Writer
	mailer *Mailer
	queue  chan Event
	log    zerolog.Logger
}

func NewDispatcher(writer *Writer, mailer *Mailer, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		mailer: mailer,
		queue:  make(chan Event, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.writer.Write(ev); err != nil {
			d.log.Error().Err(err).
				Uint("recipient_id", ev.RecipientID).
				Str("type", ev.Type).
				Msg("notification write failed")
		}

		if d.mailer != nil && ev.Email != "" {
			if err := d.mailer.Send(ev.Email, ev.Title, ev.Message); err != nil {
				d.log.Warn().Err(err).
					Str("type", ev.Type).
					Msg("notification email failed")
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full, drop rather than block the request
		d.log.Warn().Str("type", ev.Type).Msg("notification queue full, dropping event")
	}
}
